package qdrant

import (
	"context"
	"log"
	"sync"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Qdrant binding store.
//
// This module integrates the Qdrant client into an Fx-based application by
// providing the client factory and registering its lifecycle hooks.
//
// The module:
//  1. Provides the NewQdrantClient factory function to the dependency injection
//     container, making the client available to other components.
//  2. Provides the NewBindingStore function, which wraps the client into the
//     binding query/persistence abstraction.
//  3. Invokes RegisterQdrantLifecycle to handle startup/shutdown of the client.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config { return qdrant.DefaultConfig() }),
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A qdrant.Config instance must be available in the dependency injection container.
// - A logger.Logger instance (see the logger package FXModule).
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		NewBindingStore,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In
	Config *Config
}

// RegisterQdrantLifecycle handles startup/shutdown of the Qdrant client.
// It ensures proper resource cleanup and logging.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("[Qdrant] client initialized successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			once.Do(func() {
				_ = client.Close()
				log.Println("[Qdrant] client connection closed")
			})
			return nil
		},
	})
}
