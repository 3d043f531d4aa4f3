package data

import "errors"

// ErrNotFound is returned when the database has no entry for a name.
var ErrNotFound = errors.New("location not found")

// Field is one named value of a Location.
type Field struct {
	Name  string
	Value any
}

// Location is a copy of a lookup result, safe to share between goroutines.
type Location struct {
	Name    string
	Edition string
	Summary string
	Fields  []Field
}

// Map returns the fields keyed by name.
func (l *Location) Map() map[string]any {
	m := make(map[string]any, len(l.Fields))
	for _, f := range l.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Locator defines the interface for host-to-location lookups.
type Locator interface {
	// Locate looks up a host name or IP address. Returns ErrNotFound if
	// the database has no entry for it.
	Locate(name string) (*Location, error)

	// Describe returns a description of the loaded database.
	Describe() string

	// Close releases any resources held by the lookup implementation.
	Close() error
}
