package geoip

import (
	"fmt"

	"github.com/TomasB/geoip/internal/engine"
)

// Edition is one of the database schemas the package exposes fields for.
type Edition int

const (
	Country Edition = iota + 1
	Region
	City
)

func (e Edition) String() string {
	switch e {
	case Country:
		return "country"
	case Region:
		return "region"
	case City:
		return "city"
	default:
		return fmt.Sprintf("Edition(%d)", int(e))
	}
}

// ParseEdition maps "city", "country" or "region" to its Edition.
func ParseEdition(name string) (Edition, error) {
	switch name {
	case "city":
		return City, nil
	case "country":
		return Country, nil
	case "region":
		return Region, nil
	default:
		return 0, fmt.Errorf("%w: invalid type %q (city, country or region)", ErrInvalidArgument, name)
	}
}

// databaseType is the engine type OpenType asks for.
func (e Edition) databaseType() engine.DatabaseType {
	switch e {
	case Country:
		return engine.CountryEdition
	case Region:
		return engine.RegionEditionRev1
	case City:
		return engine.CityEditionRev1
	default:
		return engine.UnknownEdition
	}
}

// editionOf reports which field table serves an engine database type.
func editionOf(t engine.DatabaseType) (Edition, bool) {
	switch t {
	case engine.CountryEdition:
		return Country, true
	case engine.RegionEditionRev0, engine.RegionEditionRev1:
		return Region, true
	case engine.CityEditionRev0, engine.CityEditionRev1:
		return City, true
	default:
		return 0, false
	}
}
