package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-provided defaults for the CLI. Flags override
// these values when set explicitly.
type Config struct {
	DBPath   string `envconfig:"DB_PATH"`
	WAL      bool   `envconfig:"WAL" default:"true"`
	Sync     string `envconfig:"SYNC" default:"NORMAL"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads DAYBOOK_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("daybook", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration from environment: %w", err)
	}
	return cfg, nil
}
