package engine

import "testing"

func TestCountryTable(t *testing.T) {
	id := CountryID("US")
	if id == 0 {
		t.Fatal("expected US to have an id")
	}
	if got := CountryName(id); got != "United States" {
		t.Errorf("expected United States, got %q", got)
	}
	if got := CountryCode(id); got != "US" {
		t.Errorf("expected US, got %q", got)
	}
	if got := CountryContinent(id); got != "NA" {
		t.Errorf("expected NA, got %q", got)
	}
}

func TestCountryTable_OutOfRange(t *testing.T) {
	for _, id := range []int{-1, 0, len(countries), 1 << 20} {
		if CountryName(id) != "" || CountryCode(id) != "" || CountryContinent(id) != "" {
			t.Errorf("expected empty values for id %d", id)
		}
	}
	if CountryID("ZZ") != 0 {
		t.Error("expected unknown code to map to 0")
	}
}

func TestCountryTable_UniqueCodes(t *testing.T) {
	seen := make(map[string]bool)
	for i := 1; i < len(countries); i++ {
		code := countries[i].code
		if seen[code] {
			t.Errorf("duplicate country code %s", code)
		}
		seen[code] = true
	}
}

func TestTimeZone(t *testing.T) {
	tests := []struct {
		country, region, want string
	}{
		{"US", "CA", "America/Los_Angeles"},
		{"US", "NY", "America/New_York"},
		{"US", "", ""},
		{"CA", "QC", "America/Montreal"},
		{"DE", "BY", "Europe/Berlin"},
		{"GB", "", "Europe/London"},
		{"ZZ", "XX", ""},
	}
	for _, tt := range tests {
		if got := TimeZone(tt.country, tt.region); got != tt.want {
			t.Errorf("TimeZone(%q, %q) = %q, want %q", tt.country, tt.region, got, tt.want)
		}
	}
}

func TestRegionName(t *testing.T) {
	if got := RegionName("US", "CA"); got != "California" {
		t.Errorf("expected California, got %q", got)
	}
	if got := RegionName("US", "ZZ"); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
	if got := RegionName("", "CA"); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(CityEditionRev1); got != "GeoIP City Edition, Rev 1" {
		t.Errorf("unexpected description %q", got)
	}
	if got := Describe(DatabaseType(99)); got != "Unknown database type" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestParseCacheMode(t *testing.T) {
	m, err := ParseCacheMode("memory")
	if err != nil || m != MemoryCache {
		t.Errorf("expected MemoryCache, got %v (%v)", m, err)
	}
	if _, err := ParseCacheMode("disk"); err == nil {
		t.Error("expected error for unknown cache mode")
	}
}
