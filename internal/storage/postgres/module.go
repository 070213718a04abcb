package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// RegisterLifecycle closes the pool when the application stops.
func RegisterLifecycle(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			logger.Info("postgres storage closed")
			return nil
		},
	})
}
