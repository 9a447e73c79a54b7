package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the service configuration, loaded from environment variables.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSAllowOrigins is a comma-separated origin list for the browser
	// frontend.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`

	// ResultTTL bounds how long a simulation result stays retrievable by id.
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"1h"`

	// MaxSteps and MaxPaths cap request sizes before any simulation runs.
	MaxSteps int `env:"MAX_STEPS" envDefault:"1000000"`
	MaxPaths int `env:"MAX_PATHS" envDefault:"10000"`

	// MaxConcurrentPaths bounds the batch worker pool.
	MaxConcurrentPaths int `env:"MAX_CONCURRENT_PATHS" envDefault:"8"`
}

// Load parses the configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
