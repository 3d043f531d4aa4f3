package enginetest

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

// WriteMMDB writes an MMDB file with the given database type and records
// (keyed by CIDR) into dir and returns its path.
func WriteMMDB(t testing.TB, dir, name, dbType string, records map[string]mmdbtype.Map) string {
	t.Helper()

	w, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: dbType,
		RecordSize:   24,
	})
	if err != nil {
		t.Fatalf("failed to create mmdb writer: %v", err)
	}
	for cidr, rec := range records {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", cidr, err)
		}
		if err := w.Insert(network, rec); err != nil {
			t.Fatalf("failed to insert %s: %v", cidr, err)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func names(en string) mmdbtype.Map {
	return mmdbtype.Map{"en": mmdbtype.String(en)}
}

// CityRecords holds three cities: Mountain View (216.160.83.0/24), London
// (81.2.69.0/24) and Madrid (80.58.0.0/24).
func CityRecords() map[string]mmdbtype.Map {
	return map[string]mmdbtype.Map{
		"216.160.83.0/24": {
			"city":      mmdbtype.Map{"names": names("Mountain View")},
			"continent": mmdbtype.Map{"code": mmdbtype.String("NA")},
			"country": mmdbtype.Map{
				"iso_code": mmdbtype.String("US"),
				"names":    names("United States"),
			},
			"location": mmdbtype.Map{
				"latitude":  mmdbtype.Float64(37.386),
				"longitude": mmdbtype.Float64(-122.0838),
				"time_zone": mmdbtype.String("America/Los_Angeles"),
			},
			"postal": mmdbtype.Map{"code": mmdbtype.String("94040")},
			"subdivisions": mmdbtype.Slice{
				mmdbtype.Map{"iso_code": mmdbtype.String("CA"), "names": names("California")},
			},
		},
		"81.2.69.0/24": {
			"city":      mmdbtype.Map{"names": names("London")},
			"continent": mmdbtype.Map{"code": mmdbtype.String("EU")},
			"country": mmdbtype.Map{
				"iso_code": mmdbtype.String("GB"),
				"names":    names("United Kingdom"),
			},
			"location": mmdbtype.Map{
				"latitude":  mmdbtype.Float64(51.5142),
				"longitude": mmdbtype.Float64(-0.0931),
			},
		},
		"80.58.0.0/24": madrid(),
	}
}

func madrid() mmdbtype.Map {
	return mmdbtype.Map{
		"city":      mmdbtype.Map{"names": names("Madrid")},
		"continent": mmdbtype.Map{"code": mmdbtype.String("EU")},
		"country": mmdbtype.Map{
			"iso_code": mmdbtype.String("ES"),
			"names":    names("Spain"),
		},
		"location": mmdbtype.Map{
			"latitude":  mmdbtype.Float64(40.4172),
			"longitude": mmdbtype.Float64(-3.684),
			"time_zone": mmdbtype.String("Europe/Madrid"),
		},
		"postal": mmdbtype.Map{"code": mmdbtype.String("28014")},
		"subdivisions": mmdbtype.Slice{
			mmdbtype.Map{"iso_code": mmdbtype.String("MD"), "names": names("Madrid")},
		},
	}
}

// CountryRecords maps 216.160.83.0/24 to US and 2.125.160.0/24 to GB.
func CountryRecords() map[string]mmdbtype.Map {
	return map[string]mmdbtype.Map{
		"216.160.83.0/24": {
			"country": mmdbtype.Map{"iso_code": mmdbtype.String("US"), "names": names("United States")},
		},
		"2.125.160.0/24": {
			"country": mmdbtype.Map{"iso_code": mmdbtype.String("GB"), "names": names("United Kingdom")},
		},
	}
}

// RegionRecords maps 216.160.83.0/24 to US/CA and 80.58.0.0/24 to ES/MD.
func RegionRecords() map[string]mmdbtype.Map {
	return map[string]mmdbtype.Map{
		"216.160.83.0/24": {
			"country": mmdbtype.Map{"iso_code": mmdbtype.String("US")},
			"subdivisions": mmdbtype.Slice{
				mmdbtype.Map{"iso_code": mmdbtype.String("CA")},
			},
		},
		"80.58.0.0/24": {
			"country":  mmdbtype.Map{"iso_code": mmdbtype.String("ES")},
			"location": mmdbtype.Map{"time_zone": mmdbtype.String("Europe/Madrid")},
			"subdivisions": mmdbtype.Slice{
				mmdbtype.Map{"iso_code": mmdbtype.String("MD"), "names": names("Madrid")},
			},
		},
	}
}
