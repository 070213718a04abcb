package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/app"
	"github.com/boklen/rentals/internal/metrics"
)

type routerParams struct {
	fx.In

	Facade  *app.RentalFacade
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, p.Metrics)
}

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)
