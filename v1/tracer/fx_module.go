package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides a Uber FX module that configures distributed tracing.
// It registers the tracer client with the dependency injection system and
// sets up lifecycle management so pending spans are flushed on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.DefaultConfig() }),
//	    // other modules...
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the
// FX lifecycle, gracefully shutting down the tracer provider when the
// application terminates.
//
// This function is automatically invoked by the FXModule and normally doesn't
// need to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer...", nil, nil)
			if tracer.tracer == nil {
				tracer.logger.Warn("tracer was nil during shutdown", nil, nil)
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
