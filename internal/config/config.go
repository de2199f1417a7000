// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process-level configuration. Per-domain API settings live in
// the settings store, not here.
type Config struct {
	Port              string        `env:"PORT,default=8080"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	RoutinesFile      string        `env:"ROUTINES_FILE"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	MergePolicy       string        `env:"MERGE_POLICY,default=last-wins"`
	LocationRefresh   string        `env:"LOCATION_REFRESH,default=@every 5m"`
	GeocodeRatePerSec float64       `env:"GEOCODE_RATE_PER_SEC,default=1"`
	Timezone          string        `env:"TIMEZONE"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

// Load reads .env files (missing ones are fine) and decodes the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		logrus.Debug("No .env file found, using system environment")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: failed to decode environment: %w", err)
	}
	return &cfg, nil
}

// Location resolves TIMEZONE; nil means "use the stored preference"
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SetupLogging applies LOG_LEVEL to the standard logrus logger
func (c *Config) SetupLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.WithField("level", c.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
