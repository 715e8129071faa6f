// The package config is responsible for loading package specific configs from the
// environment variables, and validating them.
//
// Packages requiring configs should expose:
// - A Config struct with the package specific config parameters.
// - A NewConfig() function to create a new Config with default parameters.
// - A Validate() method to validate the config.
// - A String() method to return a string representation of the config.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
	"github.com/zapstore/playstats/pkg/stats"
)

type Config struct {
	Stats stats.Config

	// LogLevel is the minimum level of the logs written to stderr. Default is WARN.
	LogLevel slog.Level `env:"PLAYSTATS_LOG_LEVEL"`
}

// Load creates a new [Config] with default parameters, that get overwritten by env variables when specified.
// It returns an error if the config is invalid.
func Load() (Config, error) {
	config := New()
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate config: %w", err)
	}
	return config, nil
}

func New() Config {
	return Config{
		Stats:    stats.NewConfig(),
		LogLevel: slog.LevelWarn,
	}
}

func (c Config) Validate() error {
	if err := c.Stats.Validate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return nil
}

func (c Config) Print() {
	fmt.Println(c.Stats)
	fmt.Printf("Log Level: %s\n", c.LogLevel)
}
