package notify

// Package notify propagates "session may have changed" signals to
// subscribers. Two producers feed one event source: the credential
// store's cross-process change feed, and the in-process login signal
// fired right after the login flow finishes its writes. Consumers depend
// on the Notifier, never on which producer fired.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/estately/ui-client/internal/ports"
)

// DefaultAckTimeout bounds how long an acknowledged broadcast waits for
// slow subscribers before giving up on them. It matches the settle delay
// the timing-based design used, but here it is the fallback, not the
// mechanism.
const DefaultAckTimeout = 200 * time.Millisecond

const subscriptionBuffer = 16

// Signal tells a subscriber the session may have changed. No payload is
// attached; handlers must re-query session state from scratch rather than
// trusting anything captured at send time.
type Signal struct {
	ack func()
}

// Ack reports that the subscriber has finished re-reading session state.
// Safe to call on any Signal, including unacknowledged ones; duplicate
// calls are ignored.
func (s Signal) Ack() {
	if s.ack != nil {
		s.ack()
	}
}

// Subscription is one consumer's registration with the Notifier.
type Subscription struct {
	ch       chan Signal
	cancel   func()
	stopOnce sync.Once
}

// C returns the signal channel. It is never closed; use Cancel and stop
// receiving instead.
func (s *Subscription) C() <-chan Signal { return s.ch }

// Cancel unregisters the subscription. Consumers must call it on teardown.
func (s *Subscription) Cancel() {
	s.stopOnce.Do(s.cancel)
}

// NotifierOptions groups construction parameters for Notifier.
type NotifierOptions struct {
	Logger     *slog.Logger
	AckTimeout time.Duration // default DefaultAckTimeout when zero
}

// Notifier is the process-wide session-change event source.
type Notifier struct {
	logger     *slog.Logger
	ackTimeout time.Duration

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewNotifier constructs a Notifier.
func NewNotifier(opts NotifierOptions) *Notifier {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ackTimeout := opts.AckTimeout
	if ackTimeout <= 0 {
		ackTimeout = DefaultAckTimeout
	}
	return &Notifier{
		logger:     logger,
		ackTimeout: ackTimeout,
		subs:       make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a consumer. The returned subscription must be
// cancelled on teardown; there is no automatic subscriber tracking.
func (n *Notifier) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan Signal, subscriptionBuffer)}
	sub.cancel = func() {
		n.mu.Lock()
		delete(n.subs, sub)
		n.mu.Unlock()
	}

	n.mu.Lock()
	n.subs[sub] = struct{}{}
	n.mu.Unlock()
	return sub
}

func (n *Notifier) snapshot() []*Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	subs := make([]*Subscription, 0, len(n.subs))
	for sub := range n.subs {
		subs = append(subs, sub)
	}
	return subs
}

// Notify delivers a fire-and-forget signal to every subscriber. Sends are
// non-blocking: a subscriber whose buffer is full is hopelessly behind and
// will catch up on its next re-read.
func (n *Notifier) Notify() {
	for _, sub := range n.snapshot() {
		select {
		case sub.ch <- Signal{}:
		default:
		}
	}
}

// SignalLogin delivers the in-process login signal and waits until every
// live subscriber has acknowledged re-reading session state, or the ack
// timeout elapses. It returns true when all subscribers acked in time.
func (n *Notifier) SignalLogin(ctx context.Context) bool {
	subs := n.snapshot()
	if len(subs) == 0 {
		return true
	}

	acks := make(chan struct{}, len(subs))
	pending := 0
	for _, sub := range subs {
		var once sync.Once
		sig := Signal{ack: func() {
			once.Do(func() { acks <- struct{}{} })
		}}
		select {
		case sub.ch <- sig:
			pending++
		default:
			// Buffer full; do not wait on a subscriber that is not draining.
		}
	}

	timer := time.NewTimer(n.ackTimeout)
	defer timer.Stop()
	for pending > 0 {
		select {
		case <-acks:
			pending--
		case <-timer.C:
			n.logger.Warn("login signal not acknowledged by all subscribers",
				"pending", pending, "timeout", n.ackTimeout)
			return false
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// relevant reports whether a store change concerns session state. An
// unknown (empty) key is treated conservatively as "re-check everything".
func relevant(key string) bool {
	switch key {
	case "", ports.KeyAccessToken, ports.KeyRefreshToken, ports.KeyUserRole, ports.KeyUserData:
		return true
	}
	return false
}

// Run pumps the credential store's change feed into the notifier until
// ctx is cancelled or the feed closes.
func (n *Notifier) Run(ctx context.Context, feed ports.ChangeFeed) error {
	changes, err := feed.Changes(ctx)
	if err != nil {
		return fmt.Errorf("start change feed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if !relevant(change.Key) {
				continue
			}
			n.logger.Debug("session change observed", "key", change.Key, "origin", change.Origin)
			n.Notify()
		}
	}
}
