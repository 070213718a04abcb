// Package storage selects the key-value backend configured for the device state.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/storage/postgres"
	"github.com/boklen/rentals/internal/storage/redis"
	"github.com/boklen/rentals/internal/storage/sqlite"
)

const openTimeout = 10 * time.Second

// Module provides the configured repository.KeyValueStore and closes it on stop.
var Module = fx.Provide(newKeyValueStore)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newKeyValueStore(p storeParams) (repository.KeyValueStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	if p.Config.StorageDriver == config.DriverPostgres {
		pg, err := postgres.New(ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		postgres.RegisterLifecycle(p.Lifecycle, pg, p.Logger)
		return pg, nil
	}

	store, closeFn, err := Open(ctx, p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			p.Logger.Info("storage closed", slog.String("driver", p.Config.StorageDriver))
			return closeFn()
		},
	})
	return store, nil
}

// Open connects to the backend named by cfg.StorageDriver. The returned
// function releases it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.KeyValueStore, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite, "":
		s, err := sqlite.New(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURI, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { s.Close(); return nil }, nil
	case config.DriverRedis:
		s, err := redis.New(ctx, cfg.RedisURL, cfg.RedisPrefix, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
