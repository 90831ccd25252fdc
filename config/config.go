package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Auth API and login flow configuration
//   - store.go: Credential store configuration
//   - api.go: Backend API client configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, memory
	// store fallback). Set DEV=true or NODE_ENV=development for
	// development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth API configuration
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Credential store configuration
	Store StoreConfig `envPrefix:"STORE_"`

	// Backend API client configuration
	API APIConfig `envPrefix:"API_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.API.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling, and the
// deploy environments still set it).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
