package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/estately/ui-client/internal/apiclient"
	"github.com/estately/ui-client/internal/bootstrap"
	"github.com/estately/ui-client/internal/header"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting estately client",
		"store_mode", string(cfg.Store.Mode),
		"auth_api", cfg.Auth.BaseURL,
		"dev", cfg.IsDev)

	store, err := bootstrap.BuildCredentialStore(ctx, bootstrap.StoreConfig{
		Store:  cfg.Store,
		IsDev:  cfg.IsDev,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	navigator := &routeTracker{logger: logger}
	components, err := bootstrap.BuildSession(bootstrap.SessionDeps{
		Config:    &cfg,
		Store:     store,
		Navigator: navigator,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	// Route changes flow back into the header, as they would from a router.
	navigator.onNavigate = func(path string) {
		components.Header.HandleRouteChange(ctx, path)
	}

	components.Header.Mount(ctx)
	defer components.Header.Unmount()

	api, err := apiclient.NewClient(apiclient.Config{
		BaseURL:          cfg.API.BaseURL,
		Store:            store,
		ErrorMessagePath: cfg.API.ErrorMessagePath,
		Logger:           logger,
	})
	if err != nil {
		return err
	}
	poller := apiclient.NewNotificationPoller(apiclient.PollerOptions{
		Notifications: api.Notifications(),
		Reader:        components.Reader,
		Interval:      cfg.API.PollInterval,
		OnCount: func(count int) {
			logger.InfoContext(ctx, "unread notifications", "count", count)
		},
		Logger: logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return components.Notifier.Run(gctx, store) })
	g.Go(func() error { return poller.Run(gctx) })

	err = g.Wait()
	if err != nil && ctx.Err() != nil {
		// Normal signal-driven shutdown.
		logger.InfoContext(context.Background(), "shutting down")
		return nil
	}
	return err
}

// routeTracker is the daemon's Navigator: it records the current path and
// replays it into the header, standing in for a browser router.
type routeTracker struct {
	logger *slog.Logger

	mu         sync.Mutex
	path       string
	onNavigate func(path string)
}

func (t *routeTracker) Navigate(path string) {
	t.mu.Lock()
	t.path = path
	callback := t.onNavigate
	t.mu.Unlock()

	t.logger.Info("navigate", "path", path, "suppressed_header", header.Suppressed(path))
	if callback != nil {
		callback(path)
	}
}
