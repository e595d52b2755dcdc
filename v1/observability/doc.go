// Package observability defines the observer seam between storage
// adapters and whatever records their operations.
//
// Adapters in this library (e.g. the qdrant binding store) accept an
// optional [Observer] and notify it after every operation with an
// [OperationContext]. The metrics package ships a Prometheus-backed
// implementation; applications can plug in their own, or use
// [ObserverFunc] for one-off hooks:
//
//	store.WithObserver(observability.ObserverFunc(func(op observability.OperationContext) {
//	    log.Printf("%s.%s on %s took %s", op.Component, op.Operation, op.Resource, op.Duration)
//	}))
package observability
