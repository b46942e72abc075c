package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/Additional-Code/ricebowl/internal/cache"
	"github.com/Additional-Code/ricebowl/internal/config"
	"github.com/Additional-Code/ricebowl/internal/logger"
	"github.com/Additional-Code/ricebowl/internal/messaging"
	"github.com/Additional-Code/ricebowl/internal/observability"
	repositoryorder "github.com/Additional-Code/ricebowl/internal/repository/order"
	"github.com/Additional-Code/ricebowl/internal/seeder"
	httpserver "github.com/Additional-Code/ricebowl/internal/server/http"
	serviceorder "github.com/Additional-Code/ricebowl/internal/service/order"
	transporthttp "github.com/Additional-Code/ricebowl/internal/transport/http"
	"github.com/Additional-Code/ricebowl/internal/worker"
	workerorder "github.com/Additional-Code/ricebowl/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	serviceorder.Module,
	seeder.Module,
)

// Seed loads sample orders on startup when enabled via configuration.
var Seed = fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, seed *seeder.Seeder) {
	if !cfg.Seed.OnStart {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seed.Orders(ctx); err != nil {
				return err
			}
			return seed.Generate(ctx, cfg.Seed.Extra)
		},
	})
})

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	Seed,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
