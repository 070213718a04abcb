package di

import (
	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/adapter/providers"
	"github.com/boklen/rentals/internal/app"
	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/logger"
	"github.com/boklen/rentals/internal/metrics"
	"github.com/boklen/rentals/internal/pkg/auth"
	"github.com/boklen/rentals/internal/server/http/router"
	"github.com/boklen/rentals/internal/storage"
	"github.com/boklen/rentals/internal/usecase"
	"github.com/boklen/rentals/internal/worker"
)

// Module assembles the full state service graph. Extra options are appended
// last so callers can fx.Replace any component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		storage.Module,
		worker.Module,
		auth.Module,
		providers.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
