package usecase

import "go.uber.org/fx"

// Module provides the state stores and the flows built on them.
var Module = fx.Provide(
	NewCartStore,
	NewUserStore,
	NewCatalog,
	NewBookingFlow,
	NewAuthUseCase,
)
