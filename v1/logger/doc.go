// Package logger provides structured logging for the library and its
// consumers.
//
// It wraps Uber's Zap behind a small surface: leveled methods that take
// a message, an optional error and optional field maps, so callers never
// build zap.Field slices by hand.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/vectorbind/std/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "binding-sync",
//	})
//
//	log.Info("store connected", nil, map[string]interface{}{
//		"collection": "bindings",
//	})
//
// # FX Module Integration
//
// For applications using Uber's fx:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config { return logger.DefaultConfig() }),
//		// ... other modules
//	)
//	app.Run()
//
// The module registers a shutdown hook that flushes buffered entries.
//
// # Logging Levels
//
//	log.Debug("debug message", nil, nil) // only appears if level is Debug
//	log.Info("info message", nil, nil)
//	log.Warn("warning message", nil, nil)
//	log.Error("error message", err, nil)
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
