// Package metrics provides Prometheus-based monitoring and metrics
// collection for this library and its consumers.
//
// It exposes a configurable /metrics endpoint backed by an isolated
// registry, automatic runtime instrumentation, and a built-in
// observability.Observer implementation that records storage adapter
// operations (counts, latencies, result sizes).
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation, also an observability.Observer
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics for dependency injection
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/vectorbind/std/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "binding-sync",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Hand it to a storage adapter as its observer:
//	store = store.WithObserver(m)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config { return metrics.DefaultConfig() }),
//	)
//	app.Run()
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics through the
// factory methods or the exposed Registry:
//
//	syncLag := m.CreateGauge("binding_sync_lag_seconds",
//	    "Seconds since the last successful binding sync", []string{"collection"})
//	syncLag.WithLabelValues("bindings").Set(3.5)
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
