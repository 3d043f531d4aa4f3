// Package enginetest provides a scriptable engine and MMDB fixtures for tests.
package enginetest

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/TomasB/geoip/internal/capture"
	"github.com/TomasB/geoip/internal/engine"
)

// DB is a fake open database answering from fixed maps.
type DB struct {
	Type engine.DatabaseType

	// Countries maps a name to a two-letter country code.
	Countries map[string]string
	Regions   map[string]engine.Region
	Records   map[string]engine.Record

	// Closes counts Close calls. Cleanups may close from another goroutine.
	Closes atomic.Int64
}

func (d *DB) DatabaseType() engine.DatabaseType { return d.Type }

func (d *DB) IDByName(name string) int {
	code, ok := d.Countries[name]
	if !ok {
		return 0
	}
	return engine.CountryID(code)
}

func (d *DB) RegionByName(name string) *engine.Region {
	r, ok := d.Regions[name]
	if !ok {
		return nil
	}
	return &r
}

func (d *DB) RecordByName(name string) *engine.Record {
	r, ok := d.Records[name]
	if !ok {
		return nil
	}
	return &r
}

func (d *DB) Close() { d.Closes.Add(1) }

// Engine is a fake engine. Country, region and time zone tables are the real
// static ones from package engine.
type Engine struct {
	// Files maps a path to the database OpenPath returns for it.
	Files map[string]*DB
	// Defaults maps a database type to what OpenType returns for it.
	Defaults map[engine.DatabaseType]*DB

	// Opened logs every open attempt, as a path or "type:<n>".
	Opened []string

	RecordReleases atomic.Int64
	RegionReleases atomic.Int64

	diag *capture.WriterSlot
}

var _ engine.Engine = (*Engine)(nil)

// New returns an empty fake engine whose uncaptured diagnostics go to w.
func New(w io.Writer) *Engine {
	return &Engine{
		Files:    make(map[string]*DB),
		Defaults: make(map[engine.DatabaseType]*DB),
		diag:     capture.NewWriterSlot(w),
	}
}

func (e *Engine) OpenPath(path string, _ engine.CacheMode) engine.DB {
	e.Opened = append(e.Opened, path)
	db, ok := e.Files[path]
	if !ok {
		fmt.Fprintf(e.diag, "Error Opening file %s\n", path)
		return nil
	}
	return db
}

func (e *Engine) OpenType(t engine.DatabaseType, _ engine.CacheMode) engine.DB {
	e.Opened = append(e.Opened, fmt.Sprintf("type:%d", int(t)))
	db, ok := e.Defaults[t]
	if !ok {
		fmt.Fprintf(e.diag, "Error Opening default file for %s\n", engine.Describe(t))
		return nil
	}
	return db
}

func (e *Engine) Description(t engine.DatabaseType) string { return engine.Describe(t) }

func (e *Engine) NameByID(id int) string      { return engine.CountryName(id) }
func (e *Engine) CodeByID(id int) string      { return engine.CountryCode(id) }
func (e *Engine) ContinentByID(id int) string { return engine.CountryContinent(id) }

func (e *Engine) RegionNameByCode(countryCode, region string) string {
	return engine.RegionName(countryCode, region)
}

func (e *Engine) TimeZoneByCountryAndRegion(countryCode, region string) string {
	return engine.TimeZone(countryCode, region)
}

func (e *Engine) ReleaseRecord(*engine.Record) { e.RecordReleases.Add(1) }
func (e *Engine) ReleaseRegion(*engine.Region) { e.RegionReleases.Add(1) }

func (e *Engine) Diagnostics() capture.Redirector { return e.diag }
