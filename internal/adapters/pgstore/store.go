package pgstore

// Package pgstore provides the Postgres-backed credential store.
// Cross-process change delivery rides LISTEN/NOTIFY; TTL enforcement is
// consumer-side since Postgres does not auto-expire rows.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estately/ui-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.WatchableStore = (*Store)(nil)

const (
	tableName     = "credentials"
	notifyChannel = "credentials_changes"
)

// Store is a Postgres-based credential store.
type Store struct {
	pool   *pgxpool.Pool
	origin string
}

// NewStore creates a Postgres credential store on an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, origin: uuid.NewString()}
}

// Origin returns this client's origin ID.
func (s *Store) Origin() string { return s.origin }

// EnsureSchema creates the credentials table. A concurrently-created table
// is not an error.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE `+tableName+` (
			key        text PRIMARY KEY,
			value      bytea NOT NULL,
			expires_at timestamptz
		)`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.DuplicateTable {
			return nil
		}
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

// changeMessage is the NOTIFY payload.
type changeMessage struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

func (s *Store) notify(ctx context.Context, key string) error {
	payload, err := json.Marshal(changeMessage{Key: key, Origin: s.origin})
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

func (s *Store) Write(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+tableName+` (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = $3`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return s.notify(ctx, key)
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ports.ErrNotFound
	}

	var value []byte
	var expiresAt *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT value, expires_at FROM `+tableName+` WHERE key = $1`, key).
		Scan(&value, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select credential: %w", err)
	}

	if expiresAt != nil && time.Now().After(*expiresAt) {
		// Expired rows behave as absent; evict lazily.
		if _, delErr := s.pool.Exec(ctx, `DELETE FROM `+tableName+` WHERE key = $1`, key); delErr != nil {
			return nil, fmt.Errorf("evict expired credential: %w", delErr)
		}
		return nil, ports.ErrNotFound
	}
	return value, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to remove
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM `+tableName+` WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return s.notify(ctx, key)
	}
	return nil
}

// Clear removes all rows and announces an unknown-scope change.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM `+tableName); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return s.notify(ctx, "")
}

// Changes listens on the NOTIFY channel with a dedicated connection and
// delivers mutations made by other clients. Malformed payloads become
// unknown-scope changes.
func (s *Store) Changes(ctx context.Context) (<-chan ports.Change, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen: %w", err)
	}

	out := make(chan ports.Change)
	go func() {
		defer close(out)
		defer conn.Release()

		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}
			var change changeMessage
			if unmarshalErr := json.Unmarshal([]byte(notification.Payload), &change); unmarshalErr != nil {
				change = changeMessage{} // unknown scope
			}
			if change.Origin == s.origin {
				continue
			}
			select {
			case out <- ports.Change{Key: change.Key, Origin: change.Origin}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Health checks the health of the Postgres connection.
func (s *Store) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
