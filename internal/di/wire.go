//go:build wireinject
// +build wireinject

package di

import (
	"github.com/kola-ootro/oura-ring-data-collector/pkg/config"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Storage and upstream client
		ProvideArchive,
		ProvideSource,

		// Use cases
		ProvideRefresher,
		ProvideScheduler,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
