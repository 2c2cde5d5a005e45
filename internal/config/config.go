// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds configuration for the API server.
type Server struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// SessionSecret signs the session cookie token.
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// CookieSecure marks the session cookie Secure (behind TLS).
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment reports whether the server runs in development mode.
func (s Server) IsDevelopment() bool {
	return s.Environment == "development"
}

// LoadServer parses server configuration from environment variables.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// CLI holds configuration for the hirectl admin client.
type CLI struct {
	BaseURL  string        `env:"HIREBASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout  time.Duration `env:"HIREBASE_TIMEOUT" envDefault:"30s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadCLI parses client configuration from environment variables.
func LoadCLI() (CLI, error) {
	var cfg CLI
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
