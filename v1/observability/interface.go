package observability

import "time"

// OperationContext describes a single completed operation against an
// external resource. Adapters fill it in and hand it to an Observer;
// what happens next (metrics, tracing, logging) is the observer's
// business.
type OperationContext struct {
	// Component is the emitting adapter, e.g. "qdrant".
	Component string

	// Operation is the logical operation name, e.g. "query", "save".
	Operation string

	// Resource is the primary resource operated on, typically a
	// collection name.
	Resource string

	// SubResource carries additional addressing context, e.g. a
	// binding type or point id.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the operation failure, or nil on success.
	Error error

	// Size is an operation-specific magnitude: records returned,
	// points written, bytes transferred.
	Size int64

	// Metadata carries any further key-value context.
	Metadata map[string]interface{}
}

// Observer receives operation notifications from adapters. Implementations
// must be safe for concurrent use; adapters call ObserveOperation from
// whatever goroutine ran the operation.
type Observer interface {
	ObserveOperation(op OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(op OperationContext)

func (f ObserverFunc) ObserveOperation(op OperationContext) {
	f(op)
}
