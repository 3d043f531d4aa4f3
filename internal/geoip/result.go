package geoip

import (
	"fmt"
	"iter"
	"runtime"

	"github.com/TomasB/geoip/internal/engine"
)

// Result is the outcome of a successful lookup. Its fields depend on the
// edition of the database that produced it. A Result does not depend on the
// Handle it came from and may outlive it.
//
// A Result is not safe for concurrent use.
type Result struct {
	state   *resultState
	cleanup runtime.Cleanup
}

// resultState owns the engine data. Exactly one of id, region and record is
// set, matching edition; all are cleared on release.
type resultState struct {
	edition Edition
	eng     engine.Engine

	id     int
	region *engine.Region
	record *engine.Record
}

func newResult(s *resultState) *Result {
	r := &Result{state: s}
	r.cleanup = runtime.AddCleanup(r, (*resultState).release, s)
	return r
}

func (s *resultState) release() {
	switch s.edition {
	case Country:
		// the id indexes static engine tables; nothing to free
		s.id = 0
	case Region:
		if reg := s.region; reg != nil {
			s.region = nil
			s.eng.ReleaseRegion(reg)
		}
	case City:
		if rec := s.record; rec != nil {
			s.record = nil
			s.eng.ReleaseRecord(rec)
		}
	}
}

// value evaluates the i-th field of the edition's table.
func (s *resultState) value(i int) (any, bool) {
	switch s.edition {
	case Country:
		if s.id == 0 {
			return nil, false
		}
		return countryFields[i].value(s.eng, s.id)
	case Region:
		if s.region == nil {
			return nil, false
		}
		return regionFields[i].value(s.eng, s.region)
	case City:
		if s.record == nil {
			return nil, false
		}
		return cityFields[i].value(s.eng, s.record)
	default:
		return nil, false
	}
}

// Edition reports which database edition produced r.
func (r *Result) Edition() Edition {
	return r.state.edition
}

// Get returns the value of the named field. ok is false for names the
// edition does not have and for fields the database left empty. Values are
// strings except latitude and longitude, which are float64.
func (r *Result) Get(name string) (v any, ok bool) {
	i := fieldIndex(r.state.edition, name)
	if i < 0 {
		return nil, false
	}
	v, ok = r.state.value(i)
	runtime.KeepAlive(r)
	return v, ok
}

// String summarises the location, e.g. "Mountain View, United States (US)".
// Missing parts render as empty text. A closed Result renders as "".
func (r *Result) String() string {
	defer runtime.KeepAlive(r)
	s := r.state
	switch s.edition {
	case Country:
		if s.id == 0 {
			return ""
		}
		return fmt.Sprintf("%s (%s)", s.eng.NameByID(s.id), s.eng.CodeByID(s.id))
	case Region:
		if s.region == nil {
			return ""
		}
		return fmt.Sprintf("%s, %s", s.region.Region, s.region.CountryCode)
	case City:
		if s.record == nil {
			return ""
		}
		return fmt.Sprintf("%s, %s (%s)", s.record.City, s.record.CountryName, s.record.CountryCode)
	default:
		return ""
	}
}

// Iter returns a new iterator positioned before the first field.
func (r *Result) Iter() *Iterator {
	return &Iterator{res: r, names: fieldNames(r.state.edition)}
}

// All yields every present field as a (name, value) pair in table order.
// Each call starts over from the first field.
func (r *Result) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		it := r.Iter()
		for it.Next() {
			if !yield(it.Name(), it.Value()) {
				return
			}
		}
	}
}

// Next returns the first present field after the one called last, or the
// first present field when last is empty. ok is false once the fields are
// exhausted, and also when last is not a field of the edition.
func (r *Result) Next(last string) (name string, v any, ok bool) {
	start := 0
	if last != "" {
		i := fieldIndex(r.state.edition, last)
		if i < 0 {
			return "", nil, false
		}
		start = i + 1
	}
	it := &Iterator{res: r, names: fieldNames(r.state.edition), next: start}
	if !it.Next() {
		return "", nil, false
	}
	return it.Name(), it.Value(), true
}

// Map returns the present fields keyed by name.
func (r *Result) Map() map[string]any {
	m := make(map[string]any)
	for name, v := range r.All() {
		m[name] = v
	}
	return m
}

// Close releases the engine data held by r. It is safe to call more than
// once. Afterwards r has no fields and renders as "".
func (r *Result) Close() {
	r.state.release()
	r.cleanup.Stop()
}

// Iterator walks the present fields of a Result.
type Iterator struct {
	res   *Result
	names []string
	next  int

	name  string
	value any
}

// Next advances to the next present field and reports whether there is one.
func (it *Iterator) Next() bool {
	for it.next < len(it.names) {
		i := it.next
		it.next++
		v, ok := it.res.state.value(i)
		runtime.KeepAlive(it.res)
		if ok {
			it.name, it.value = it.names[i], v
			return true
		}
	}
	it.name, it.value = "", nil
	return false
}

// Name returns the current field name.
func (it *Iterator) Name() string { return it.name }

// Value returns the current field value.
func (it *Iterator) Value() any { return it.value }
