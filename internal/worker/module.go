package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/metrics"
)

// Module provides the write-behind persister.
var Module = fx.Provide(newWriteBehind)

type writeBehindParams struct {
	fx.In

	Store   repository.KeyValueStore
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newWriteBehind(p writeBehindParams) *WriteBehind {
	var recorder Recorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	return NewWriteBehind(p.Store, p.Config.FlushInterval, p.Logger, recorder)
}
