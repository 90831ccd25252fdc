package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// StoreMode selects the credential store backend.
type StoreMode string

const (
	// StoreModeRedis uses Redis with pub/sub change delivery.
	StoreModeRedis StoreMode = "redis"
	// StoreModePostgres uses Postgres with LISTEN/NOTIFY change delivery.
	StoreModePostgres StoreMode = "postgres"
	// StoreModeMemory uses the in-process store (development and tests only;
	// no cross-process propagation).
	StoreModeMemory StoreMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreMode.
func (m *StoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "postgres", "memory":
		*m = StoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreMode: %q (valid options: redis, postgres, memory)", v)
	}
}

// RedisStoreConfig contains Redis credential store configuration.
type RedisStoreConfig struct {
	Addr     string `env:"ADDR"       envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"   envDefault:""`
	DB       int    `env:"DB"         envDefault:"0"`
	Prefix   string `env:"KEY_PREFIX" envDefault:"credentials:"`
}

// PostgresStoreConfig contains Postgres credential store configuration.
type PostgresStoreConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"estately"`
	Password string `env:"PASSWORD" envDefault:"estately"`
	Name     string `env:"NAME"     envDefault:"estately"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// DSN builds the Postgres connection string.
func (c PostgresStoreConfig) DSN() string {
	hostPort := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, hostPort, c.Name, c.SSLMode)
}

// StoreConfig groups all credential store configuration.
type StoreConfig struct {
	// Mode determines which store backend to use.
	Mode StoreMode `env:"MODE" envDefault:"redis"`

	// Redis configuration (used when Mode=redis).
	Redis RedisStoreConfig `envPrefix:"REDIS_"`

	// Postgres configuration (used when Mode=postgres).
	Postgres PostgresStoreConfig `envPrefix:"PG_"`
}
