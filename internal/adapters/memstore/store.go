package memstore

// Package memstore provides an in-memory credential store for unit tests
// and single-process development. A Hub holds the shared backing map;
// each Client is an independent view with its own origin ID, so tests can
// model several clients sharing one store.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estately/ui-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.WatchableStore = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

type subscriber struct {
	origin string
	ch     chan ports.Change
}

// Hub is the shared backing storage for one or more Store clients.
type Hub struct {
	mu      sync.Mutex
	entries map[string]entry
	subs    map[*subscriber]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		entries: make(map[string]entry),
		subs:    make(map[*subscriber]struct{}),
	}
}

// Client returns a store view with a fresh origin ID.
func (h *Hub) Client() *Store {
	return &Store{hub: h, origin: uuid.NewString()}
}

// publish delivers a change to every subscriber except those sharing the
// writer's origin. Sends are non-blocking: a slow consumer misses the tick
// but will re-read on the next one (no payload is trusted anyway).
func (h *Hub) publish(origin, key string) {
	for sub := range h.subs {
		if sub.origin == origin {
			continue
		}
		select {
		case sub.ch <- ports.Change{Key: key, Origin: origin}:
		default:
		}
	}
}

// Store is one client's handle on a Hub.
type Store struct {
	hub    *Hub
	origin string
}

// NewStore creates a standalone store backed by its own Hub.
func NewStore() *Store {
	return NewHub().Client()
}

// Origin returns this client's origin ID.
func (s *Store) Origin() string { return s.origin }

func (s *Store) Write(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.entries[key] = e
	s.hub.publish(s.origin, key)
	return nil
}

func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	e, ok := s.hub.entries[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		// Lazy eviction: expired entries behave as absent.
		delete(s.hub.entries, key)
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.entries[key]; ok {
		delete(s.hub.entries, key)
		s.hub.publish(s.origin, key)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.entries = make(map[string]entry)
	// Empty key means unknown scope: consumers re-check everything.
	s.hub.publish(s.origin, "")
	return nil
}

// Changes delivers mutations made by other clients of the same Hub.
func (s *Store) Changes(ctx context.Context) (<-chan ports.Change, error) {
	sub := &subscriber{origin: s.origin, ch: make(chan ports.Change, 16)}

	s.hub.mu.Lock()
	s.hub.subs[sub] = struct{}{}
	s.hub.mu.Unlock()

	out := make(chan ports.Change)
	go func() {
		defer close(out)
		defer func() {
			s.hub.mu.Lock()
			delete(s.hub.subs, sub)
			s.hub.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case change := <-sub.ch:
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
