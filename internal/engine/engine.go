// Package engine defines the contract of the geolocation engine the geoip
// core binds to, together with the implementations shipped with it: a pure Go
// engine reading MaxMind DB files and, behind the libgeoip build tag, a cgo
// wrapper around the legacy C library.
package engine

import (
	"fmt"
	"unsafe"

	"github.com/TomasB/geoip/internal/capture"
)

// DatabaseType identifies the kind of database an engine handle has open.
// Values follow the legacy GeoIP numbering.
type DatabaseType int

const (
	UnknownEdition    DatabaseType = 0
	CountryEdition    DatabaseType = 1
	CityEditionRev1   DatabaseType = 2
	RegionEditionRev1 DatabaseType = 3
	ISPEdition        DatabaseType = 4
	OrgEdition        DatabaseType = 5
	CityEditionRev0   DatabaseType = 6
	RegionEditionRev0 DatabaseType = 7
	ProxyEdition      DatabaseType = 8
	ASNumEdition      DatabaseType = 9
	NetSpeedEdition   DatabaseType = 10
	DomainEdition     DatabaseType = 11
)

var descriptions = [...]string{
	UnknownEdition:    "Unknown database type",
	CountryEdition:    "GeoIP Country Edition",
	CityEditionRev1:   "GeoIP City Edition, Rev 1",
	RegionEditionRev1: "GeoIP Region Edition, Rev 1",
	ISPEdition:        "GeoIP ISP Edition",
	OrgEdition:        "GeoIP Organization Edition",
	CityEditionRev0:   "GeoIP City Edition, Rev 0",
	RegionEditionRev0: "GeoIP Region Edition, Rev 0",
	ProxyEdition:      "GeoIP Proxy Edition",
	ASNumEdition:      "GeoIP ASNum Edition",
	NetSpeedEdition:   "GeoIP Netspeed Edition",
	DomainEdition:     "GeoIP Domain Name Edition",
}

// Describe returns the static description of t.
func Describe(t DatabaseType) string {
	if t < 0 || int(t) >= len(descriptions) {
		return descriptions[UnknownEdition]
	}
	return descriptions[t]
}

// CacheMode selects how an engine keeps a database file in memory.
type CacheMode int

const (
	Standard CacheMode = iota
	MemoryCache
	CheckCache
	IndexCache
	MMapCache
)

var cacheModes = map[string]CacheMode{
	"standard": Standard,
	"memory":   MemoryCache,
	"check":    CheckCache,
	"index":    IndexCache,
	"mmap":     MMapCache,
}

// ParseCacheMode maps a configuration name ("standard", "memory", "check",
// "index" or "mmap") to a CacheMode.
func ParseCacheMode(name string) (CacheMode, error) {
	if m, ok := cacheModes[name]; ok {
		return m, nil
	}
	return Standard, fmt.Errorf("unknown cache mode %q", name)
}

// Region is the result of a region-edition query. Empty strings stand for
// values the database does not carry.
type Region struct {
	CountryCode string
	Region      string

	native unsafe.Pointer
}

// Record is the result of a city-edition query. Empty strings stand for
// values the database does not carry.
type Record struct {
	CountryCode   string
	CountryName   string
	Region        string
	City          string
	PostalCode    string
	Latitude      float64
	Longitude     float64
	ContinentCode string

	native unsafe.Pointer
}

// DB is one opened database.
type DB interface {
	// DatabaseType reports the edition of the open database.
	DatabaseType() DatabaseType

	// IDByName returns the country id for a host name or IP address, or 0.
	IDByName(name string) int

	// RegionByName returns a region owned by the caller, or nil. It must be
	// handed back with Engine.ReleaseRegion.
	RegionByName(name string) *Region

	// RecordByName returns a record owned by the caller, or nil. It must be
	// handed back with Engine.ReleaseRecord.
	RecordByName(name string) *Record

	// Close releases the database. It must not be called twice.
	Close()
}

// Engine opens databases and answers the table lookups that need no open
// database. Open failures are reported only as text written to the
// engine's Diagnostics channel.
type Engine interface {
	// OpenPath opens the database file at path, or returns nil.
	OpenPath(path string, mode CacheMode) DB

	// OpenType opens the default file for t, or returns nil.
	OpenType(t DatabaseType, mode CacheMode) DB

	// Description returns the static text describing t.
	Description(t DatabaseType) string

	NameByID(id int) string
	CodeByID(id int) string
	ContinentByID(id int) string

	// RegionNameByCode maps a country and region code to the region's name.
	RegionNameByCode(countryCode, region string) string

	// TimeZoneByCountryAndRegion maps a country and region code to an IANA
	// time zone name.
	TimeZoneByCountryAndRegion(countryCode, region string) string

	ReleaseRecord(r *Record)
	ReleaseRegion(r *Region)

	// Diagnostics is the channel the engine reports failures on.
	Diagnostics() capture.Redirector
}
