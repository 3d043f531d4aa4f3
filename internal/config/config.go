package config

import (
	"errors"
	"fmt"

	"github.com/TomasB/geoip/internal/engine"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the service settings, read from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GRPCPort string `env:"GRPC_PORT" envDefault:"9090"`

	// DBPath selects one database file. When empty, DBTypes are tried in
	// order from their default locations under DataDir.
	DBPath  string   `env:"GEOIP_DB_PATH"`
	DBTypes []string `env:"GEOIP_DB_TYPES" envSeparator:"," envDefault:"city,region,country"`
	DataDir string   `env:"GEOIP_DATA_DIR" envDefault:"/usr/share/GeoIP"`
	Cache   string   `env:"GEOIP_CACHE" envDefault:"index"`
	Watch   bool     `env:"GEOIP_WATCH" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads envFiles (default ".env") if present, then the environment.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DBPath == "" && len(c.DBTypes) == 0 {
		return errors.New("GEOIP_DB_PATH or GEOIP_DB_TYPES is required")
	}
	if _, err := engine.ParseCacheMode(c.Cache); err != nil {
		return fmt.Errorf("GEOIP_CACHE: %w", err)
	}
	if c.Watch && c.DBPath == "" {
		return errors.New("GEOIP_WATCH requires GEOIP_DB_PATH")
	}
	return nil
}
