package geoip

import (
	"errors"
	"testing"

	"github.com/TomasB/geoip/internal/engine"
	"github.com/TomasB/geoip/internal/engine/enginetest"
)

func TestIntegration_MaxMindCity(t *testing.T) {
	path := enginetest.WriteMMDB(t, t.TempDir(), "GeoLite2-City.mmdb", "GeoLite2-City", enginetest.CityRecords())

	h, err := Open(path, WithEngine(engine.NewMaxMind()))
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer h.Close()

	r, err := h.Lookup("216.160.83.56")
	if err != nil || r == nil {
		t.Fatalf("expected a result, got %v, %v", r, err)
	}
	defer r.Close()

	if r.String() != "Mountain View, United States (US)" {
		t.Errorf("unexpected summary %q", r.String())
	}
	if v, _ := r.Get("time_zone"); v != "America/Los_Angeles" {
		t.Errorf("unexpected time zone %v", v)
	}
	if v, _ := r.Get("postal_code"); v != "94040" {
		t.Errorf("unexpected postal code %v", v)
	}

	miss, err := h.Lookup("1.1.1.1")
	if err != nil || miss != nil {
		t.Errorf("expected no result, got %v, %v", miss, err)
	}
}

func TestIntegration_MaxMindOpenType(t *testing.T) {
	dir := t.TempDir()
	enginetest.WriteMMDB(t, dir, "GeoLite2-Country.mmdb", "GeoLite2-Country", enginetest.CountryRecords())
	eng := engine.NewMaxMind(engine.WithDataDir(dir))

	h, err := OpenType([]string{"region", "country"}, WithEngine(eng))
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer h.Close()

	r, err := h.Lookup("2.125.160.216")
	if err != nil || r == nil {
		t.Fatalf("expected a result, got %v, %v", r, err)
	}
	if r.String() != "United Kingdom (GB)" {
		t.Errorf("unexpected summary %q", r.String())
	}
}

func TestIntegration_MaxMindOpenFailure(t *testing.T) {
	_, err := Open("/nonexistent/path.mmdb", WithEngine(engine.NewMaxMind()))

	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *OpenError, got %v", err)
	}
	if openErr.Diagnostic == "" {
		t.Error("expected the engine's diagnostic text")
	}
}

func TestIntegration_MaxMindDerivedFieldsOutsideUS(t *testing.T) {
	path := enginetest.WriteMMDB(t, t.TempDir(), "GeoLite2-City.mmdb", "GeoLite2-City", enginetest.CityRecords())

	h, err := Open(path, WithEngine(engine.NewMaxMind()))
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer h.Close()

	r, err := h.Lookup("80.58.0.10")
	if err != nil || r == nil {
		t.Fatalf("expected a result, got %v, %v", r, err)
	}
	defer r.Close()

	if v, ok := r.Get("time_zone"); !ok || v != "Europe/Madrid" {
		t.Errorf("time_zone = %v, %v; want Europe/Madrid", v, ok)
	}
	if v, ok := r.Get("region_name"); !ok || v != "Madrid" {
		t.Errorf("region_name = %v, %v; want Madrid", v, ok)
	}
}

func TestIntegration_MaxMindAbsentFields(t *testing.T) {
	path := enginetest.WriteMMDB(t, t.TempDir(), "GeoLite2-City.mmdb", "GeoLite2-City", enginetest.CityRecords())

	h, err := Open(path, WithEngine(engine.NewMaxMind()))
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer h.Close()

	r, err := h.Lookup("81.2.69.160")
	if err != nil || r == nil {
		t.Fatalf("expected a result, got %v, %v", r, err)
	}
	defer r.Close()

	for _, name := range []string{"postal_code", "region", "region_name"} {
		if v, ok := r.Get(name); ok || v != nil {
			t.Errorf("Get(%q) = %v, %v; want <nil>, false", name, v, ok)
		}
	}
	for name, v := range r.All() {
		if v == nil || v == "" {
			t.Errorf("iteration yielded absent field %s", name)
		}
	}
}
