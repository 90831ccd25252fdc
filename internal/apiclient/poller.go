package apiclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/estately/ui-client/internal/service"
)

// DefaultPollInterval matches the dashboards' notification refresh cadence.
const DefaultPollInterval = 30 * time.Second

// PollerOptions groups dependencies for NotificationPoller.
type PollerOptions struct {
	Notifications *NotificationService
	Reader        *service.SessionReader
	Interval      time.Duration // default DefaultPollInterval when zero

	// OnCount is invoked with each fetched unread count.
	OnCount func(count int)

	Logger *slog.Logger
}

// NotificationPoller periodically refreshes the unread-notification count
// while a session is live. It shares the single-writer model: it only
// reads session state and never mutates the credential store.
type NotificationPoller struct {
	notifications *NotificationService
	reader        *service.SessionReader
	interval      time.Duration
	onCount       func(int)
	logger        *slog.Logger
}

// NewNotificationPoller constructs a poller.
func NewNotificationPoller(opts PollerOptions) *NotificationPoller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationPoller{
		notifications: opts.Notifications,
		reader:        opts.Reader,
		interval:      interval,
		onCount:       opts.OnCount,
		logger:        logger,
	}
}

// Run polls until ctx is cancelled. Fetch failures are logged and the next
// tick retries; polling pauses while logged out.
func (p *NotificationPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *NotificationPoller) poll(ctx context.Context) {
	if !p.reader.IsAuthenticated(ctx) {
		return
	}

	count, err := p.notifications.Unread(ctx)
	if err != nil {
		p.logger.Warn("unread count fetch failed", "error", err)
		return
	}
	if p.onCount != nil {
		p.onCount(count)
	}
}
