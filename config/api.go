package config

import "time"

// APIConfig contains backend API client configuration.
type APIConfig struct {
	// BaseURL is the backend REST root.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:4000"`

	// ErrorMessagePath is the JMESPath locating the display message in
	// backend error envelopes.
	ErrorMessagePath string `env:"ERROR_MESSAGE_PATH" envDefault:"error.message"`

	// PollInterval is the notification poller cadence.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`
}

// Sanitize applies guardrails to API client configuration.
func (c *APIConfig) Sanitize() {
	if c.PollInterval <= 0 {
		c.PollInterval = 30 * time.Second
	}
}
