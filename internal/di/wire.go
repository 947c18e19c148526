//go:build wireinject
// +build wireinject

package di

import (
	"CropAdvisor/pkg/config"
	"CropAdvisor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideSnapshotPublisher,
		ProvidePriceSource,

		// Use cases
		ProvidePriceAggregator,

		// HTTP
		ProvideHTTPHandler,
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
