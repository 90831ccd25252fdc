package config

import "time"

// AuthConfig contains auth API and login flow configuration.
type AuthConfig struct {
	// BaseURL is the external auth service root.
	BaseURL string `env:"API_URL" envDefault:"http://localhost:4000"`

	// ErrorMessagePath is the JMESPath locating the display message in
	// the auth service's error envelope.
	ErrorMessagePath string `env:"ERROR_MESSAGE_PATH" envDefault:"error.message"`

	// AckTimeout bounds how long the login flow waits for subscribers to
	// acknowledge re-reading session state before navigating anyway.
	AckTimeout time.Duration `env:"ACK_TIMEOUT" envDefault:"200ms"`
}

// Sanitize applies guardrails to auth configuration.
func (c *AuthConfig) Sanitize() {
	if c.AckTimeout <= 0 {
		c.AckTimeout = 200 * time.Millisecond
	}
}
