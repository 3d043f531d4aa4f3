// Package geoip opens geolocation databases through an engine and exposes
// lookup results as named, iterable, printable fields.
//
// Three database editions are supported. Each has a fixed field table:
//
//	country: country, country_code, continent
//	region:  country_code, region, time_zone
//	city:    city, postal_code, latitude, longitude, country, country_code,
//	         region, continent, region_name, time_zone
//
// Handles and Results own engine resources. Close releases them
// deterministically; otherwise they are released once the wrapper becomes
// unreachable. Neither type does any locking: callers sharing one across
// goroutines must serialize access.
package geoip

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/TomasB/geoip/internal/capture"
	"github.com/TomasB/geoip/internal/engine"
)

// DefaultCacheMode is the caching mode databases are opened with.
const DefaultCacheMode = engine.IndexCache

type options struct {
	engine    engine.Engine
	cacheMode engine.CacheMode
}

// Option configures Open and OpenType.
type Option func(*options)

// WithEngine selects the engine. The default is engine.Default().
func WithEngine(e engine.Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithCacheMode overrides DefaultCacheMode.
func WithCacheMode(m engine.CacheMode) Option {
	return func(o *options) { o.cacheMode = m }
}

func newOptions(opts []Option) options {
	o := options{cacheMode: DefaultCacheMode}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = engine.Default()
	}
	return o
}

// Handle is an open geolocation database.
type Handle struct {
	state   *handleState
	cleanup runtime.Cleanup
}

// handleState owns the engine handle; db is nil once released.
type handleState struct {
	eng    engine.Engine
	db     engine.DB
	dbType engine.DatabaseType
}

func (s *handleState) release() {
	if db := s.db; db != nil {
		s.db = nil
		db.Close()
	}
}

func newHandle(eng engine.Engine, db engine.DB) *Handle {
	s := &handleState{eng: eng, db: db, dbType: db.DatabaseType()}
	h := &Handle{state: s}
	h.cleanup = runtime.AddCleanup(h, (*handleState).release, s)
	return h
}

// Open opens the database file at path. On failure the returned error is an
// *OpenError carrying the engine's diagnostic output.
func Open(path string, opts ...Option) (*Handle, error) {
	o := newOptions(opts)

	var db engine.DB
	diag := capture.Run(o.engine.Diagnostics(), func() {
		db = o.engine.OpenPath(path, o.cacheMode)
	})
	if db == nil {
		return nil, &OpenError{Target: path, Diagnostic: diag}
	}
	return newHandle(o.engine, db), nil
}

// OpenType opens the default database file of the first of types ("city",
// "country" or "region") that can be opened. Every name is validated before
// any file is touched.
func OpenType(types []string, opts ...Option) (*Handle, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no database type given", ErrInvalidArgument)
	}
	editions := make([]Edition, 0, len(types))
	for _, name := range types {
		e, err := ParseEdition(name)
		if err != nil {
			return nil, err
		}
		editions = append(editions, e)
	}

	o := newOptions(opts)

	var db engine.DB
	diag := capture.Run(o.engine.Diagnostics(), func() {
		for _, e := range editions {
			if db = o.engine.OpenType(e.databaseType(), o.cacheMode); db != nil {
				return
			}
		}
	})
	if db == nil {
		return nil, &OpenError{Target: strings.Join(types, ", "), Diagnostic: diag}
	}
	return newHandle(o.engine, db), nil
}

// Edition reports the edition of the open database. ok is false for
// database types without a field table; lookups on them fail with
// ErrUnsupportedEdition.
func (h *Handle) Edition() (e Edition, ok bool) {
	return editionOf(h.state.dbType)
}

// DatabaseType reports the engine's type code for the open database.
func (h *Handle) DatabaseType() engine.DatabaseType {
	return h.state.dbType
}

// Describe returns the engine's description of the database type.
func (h *Handle) Describe() string {
	return h.state.eng.Description(h.state.dbType)
}

func (h *Handle) String() string {
	return h.Describe()
}

// Lookup finds a host name or IP address. A nil Result with a nil error
// means the database has no entry for name.
func (h *Handle) Lookup(name string) (*Result, error) {
	defer runtime.KeepAlive(h)

	s := h.state
	if s.db == nil {
		return nil, ErrClosed
	}
	edition, ok := editionOf(s.dbType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEdition, s.eng.Description(s.dbType))
	}

	rs := &resultState{edition: edition, eng: s.eng}
	switch edition {
	case Country:
		if rs.id = s.db.IDByName(name); rs.id == 0 {
			return nil, nil
		}
	case Region:
		if rs.region = s.db.RegionByName(name); rs.region == nil {
			return nil, nil
		}
	case City:
		if rs.record = s.db.RecordByName(name); rs.record == nil {
			return nil, nil
		}
	}
	return newResult(rs), nil
}

// Close releases the database. It is safe to call more than once; later
// lookups fail with ErrClosed. Results obtained earlier stay usable.
func (h *Handle) Close() error {
	h.state.release()
	h.cleanup.Stop()
	return nil
}
