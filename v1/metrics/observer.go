package metrics

import "github.com/vectorbind/std/v1/observability"

// ObserveOperation records a storage adapter operation on the built-in
// metrics: one count labelled by outcome, one latency sample, and one
// size sample when the operation reported a size.
//
// Metrics implements observability.Observer through this method, so a
// *Metrics can be passed directly to any adapter accepting an observer.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}

	m.operationsTotal.WithLabelValues(op.Component, op.Operation, op.Resource, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())

	if op.Size > 0 {
		m.operationSize.WithLabelValues(op.Component, op.Operation).Observe(float64(op.Size))
	}
}
