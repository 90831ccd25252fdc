package redisstore

// Package redisstore provides the Redis-backed credential store for
// production use. TTL semantics are delegated to Redis; cross-process
// change delivery rides Redis pub/sub.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/estately/ui-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.WatchableStore = (*Store)(nil)

const defaultPrefix = "credentials:"

// Store is a Redis-based credential store.
type Store struct {
	client redis.UniversalClient
	prefix string
	origin string
}

// NewStore creates a Redis credential store with the default key prefix.
func NewStore(client redis.UniversalClient) *Store {
	return NewStoreWithPrefix(client, defaultPrefix)
}

// NewStoreWithPrefix creates a Redis credential store with a custom key prefix.
// The prefix also scopes the pub/sub change channel, so clients must share
// it to observe each other's writes.
func NewStoreWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		origin: uuid.NewString(),
	}
}

// Origin returns this client's origin ID.
func (s *Store) Origin() string { return s.origin }

func (s *Store) changeChannel() string { return s.prefix + "changes" }

// changeMessage is the wire form published on the change channel.
type changeMessage struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

func (s *Store) publish(ctx context.Context, key string) error {
	payload, err := json.Marshal(changeMessage{Key: key, Origin: s.origin})
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	return s.client.Publish(ctx, s.changeChannel(), payload).Err()
}

func (s *Store) Write(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return s.publish(ctx, key)
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ports.ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return []byte(data), nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to remove
	}

	deleted, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if deleted > 0 {
		return s.publish(ctx, key)
	}
	return nil
}

// Clear removes all four session fields and announces an unknown-scope
// change so other clients re-check everything.
func (s *Store) Clear(ctx context.Context) error {
	keys := []string{
		s.prefix + ports.KeyAccessToken,
		s.prefix + ports.KeyRefreshToken,
		s.prefix + ports.KeyUserRole,
		s.prefix + ports.KeyUserData,
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return s.publish(ctx, "")
}

// Changes subscribes to the change channel and delivers mutations made by
// other clients. Messages published by this client are filtered out to
// match browser storage-event semantics. Malformed messages are delivered
// as unknown-scope changes rather than dropped.
func (s *Store) Changes(ctx context.Context) (<-chan ports.Change, error) {
	sub := s.client.Subscribe(ctx, s.changeChannel())

	// Confirm the subscription before returning so callers never miss
	// changes published after Changes returns.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan ports.Change)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change changeMessage
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
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
		}
	}()
	return out, nil
}

// Health checks the health of the Redis connection.
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
