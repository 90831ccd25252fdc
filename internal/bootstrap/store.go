package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/estately/ui-client/config"
	"github.com/estately/ui-client/internal/adapters/memstore"
	"github.com/estately/ui-client/internal/adapters/pgstore"
	"github.com/estately/ui-client/internal/adapters/redisstore"
	"github.com/estately/ui-client/internal/ports"
)

// StoreConfig contains configuration for the credential store builder.
type StoreConfig struct {
	Store  config.StoreConfig
	IsDev  bool
	Logger *slog.Logger
}

// BuildCredentialStore creates the credential store for the configured
// backend. In development mode an unreachable backend degrades to the
// in-process memory store with a warning; in production it is an error.
//
//nolint:ireturn // callers depend on the port, not the backend.
func BuildCredentialStore(ctx context.Context, cfg StoreConfig) (ports.WatchableStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := buildBackend(ctx, cfg)
	if err == nil {
		return store, nil
	}
	if cfg.IsDev {
		logger.Warn("credential store backend unavailable, using memory store",
			"mode", string(cfg.Store.Mode), "error", err)
		return memstore.NewStore(), nil
	}
	return nil, err
}

//nolint:ireturn // see BuildCredentialStore.
func buildBackend(ctx context.Context, cfg StoreConfig) (ports.WatchableStore, error) {
	switch cfg.Store.Mode {
	case config.StoreModeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return redisstore.NewStoreWithPrefix(client, cfg.Store.Redis.Prefix), nil

	case config.StoreModePostgres:
		pool, err := pgxpool.New(ctx, cfg.Store.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := pgstore.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil

	case config.StoreModeMemory:
		return memstore.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown store mode: %q", cfg.Store.Mode)
	}
}
