package geoip

import (
	"slices"

	"github.com/TomasB/geoip/internal/engine"
)

// field names one attribute of a result and computes it from the engine's
// data. ok is false when the database has no value for it.
type field[T any] struct {
	name  string
	value func(e engine.Engine, d T) (v any, ok bool)
}

// optString reports an empty string as absent.
func optString(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	return s, true
}

// The tables below are never modified; their order is the iteration order.

var cityFields = [...]field[*engine.Record]{
	{"city", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.City) }},
	{"postal_code", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.PostalCode) }},
	{"latitude", func(_ engine.Engine, r *engine.Record) (any, bool) { return r.Latitude, true }},
	{"longitude", func(_ engine.Engine, r *engine.Record) (any, bool) { return r.Longitude, true }},
	{"country", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.CountryName) }},
	{"country_code", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.CountryCode) }},
	{"region", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.Region) }},
	{"continent", func(_ engine.Engine, r *engine.Record) (any, bool) { return optString(r.ContinentCode) }},
	{"region_name", func(e engine.Engine, r *engine.Record) (any, bool) {
		return optString(e.RegionNameByCode(r.CountryCode, r.Region))
	}},
	{"time_zone", func(e engine.Engine, r *engine.Record) (any, bool) {
		return optString(e.TimeZoneByCountryAndRegion(r.CountryCode, r.Region))
	}},
}

var countryFields = [...]field[int]{
	{"country", func(e engine.Engine, id int) (any, bool) { return optString(e.NameByID(id)) }},
	{"country_code", func(e engine.Engine, id int) (any, bool) { return optString(e.CodeByID(id)) }},
	{"continent", func(e engine.Engine, id int) (any, bool) { return optString(e.ContinentByID(id)) }},
}

var regionFields = [...]field[*engine.Region]{
	{"country_code", func(_ engine.Engine, r *engine.Region) (any, bool) { return optString(r.CountryCode) }},
	{"region", func(_ engine.Engine, r *engine.Region) (any, bool) { return optString(r.Region) }},
	{"time_zone", func(e engine.Engine, r *engine.Region) (any, bool) {
		return optString(e.TimeZoneByCountryAndRegion(r.CountryCode, r.Region))
	}},
}

func namesOf[T any](fs []field[T]) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

var (
	cityNames    = namesOf(cityFields[:])
	countryNames = namesOf(countryFields[:])
	regionNames  = namesOf(regionFields[:])
)

func fieldNames(e Edition) []string {
	switch e {
	case Country:
		return countryNames
	case Region:
		return regionNames
	case City:
		return cityNames
	default:
		return nil
	}
}

// Fields returns the field names of edition e in iteration order.
func Fields(e Edition) []string {
	return slices.Clone(fieldNames(e))
}

// fieldIndex returns the position of name in e's table, or -1.
func fieldIndex(e Edition, name string) int {
	return slices.Index(fieldNames(e), name)
}
