package config

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.GRPCPort != "9090" {
		t.Errorf("unexpected ports %s/%s", cfg.Port, cfg.GRPCPort)
	}
	if !slices.Equal(cfg.DBTypes, []string{"city", "region", "country"}) {
		t.Errorf("unexpected types %v", cfg.DBTypes)
	}
	if cfg.DataDir != "/usr/share/GeoIP" {
		t.Errorf("unexpected data dir %q", cfg.DataDir)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GEOIP_DB_TYPES", "country,city")
	t.Setenv("GEOIP_DB_PATH", "/tmp/db.mmdb")
	t.Setenv("GEOIP_WATCH", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(cfg.DBTypes, []string{"country", "city"}) {
		t.Errorf("unexpected types %v", cfg.DBTypes)
	}
	if cfg.DBPath != "/tmp/db.mmdb" || !cfg.Watch {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GRPC_PORT=7070\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("GRPC_PORT") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GRPCPort != "7070" {
		t.Errorf("expected port from env file, got %s", cfg.GRPCPort)
	}
}

func TestLoad_WatchRequiresPath(t *testing.T) {
	t.Setenv("GEOIP_WATCH", "true")
	t.Setenv("GEOIP_DB_PATH", "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error when watching without a path")
	}
}

func TestLoad_InvalidCache(t *testing.T) {
	t.Setenv("GEOIP_CACHE", "disk")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for unknown cache mode")
	}
}

func TestConfigSourceFormatted(t *testing.T) {
	src, err := os.ReadFile("config.go")
	if err != nil {
		t.Fatalf("failed to read config.go: %v", err)
	}
	formatted, err := format.Source(src)
	if err != nil {
		t.Fatalf("failed to format config.go: %v", err)
	}
	if !bytes.Equal(src, formatted) {
		t.Error("config.go is not gofmt-formatted")
	}
}
