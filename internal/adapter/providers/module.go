package providers

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/usecase"
)

// Module exposes the provider matcher to the fx graph. The remote directory
// is used when an address is configured, the static mock otherwise.
var Module = fx.Provide(newMatcher)

type matcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMatcher(p matcherParams) (usecase.ProviderMatcher, error) {
	if p.Config.ProviderAPIAddress == "" {
		return NewStaticMatcher(p.Config.ProviderSearchDelay), nil
	}
	p.Logger.Info("using remote provider directory", slog.String("address", p.Config.ProviderAPIAddress))
	return NewHTTPMatcher(p.Config.ProviderAPIAddress, p.Logger)
}
