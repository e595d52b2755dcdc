package binding

import "iter"

// QueryResult is an immutable, ordered container of the records a
// query produced. All accessors are total: none of them fails, and
// iteration can be restarted any number of times.
type QueryResult struct {
	records []Binding
}

// NewQueryResult wraps records into a result. The slice is copied, so
// later mutations by the producer do not leak into the result.
func NewQueryResult(records []Binding) *QueryResult {
	rs := make([]Binding, len(records))
	copy(rs, records)
	return &QueryResult{records: rs}
}

// Bindings returns a copy of the contained records in backend order.
func (r *QueryResult) Bindings() []Binding {
	rs := make([]Binding, len(r.records))
	copy(rs, r.records)
	return rs
}

// IsEmpty reports whether the result holds no records.
func (r *QueryResult) IsEmpty() bool {
	return len(r.records) == 0
}

// Count returns the number of contained records.
func (r *QueryResult) Count() int {
	return len(r.records)
}

// First returns the first record and true, or the zero Binding and
// false when the result is empty.
func (r *QueryResult) First() (Binding, bool) {
	if len(r.records) == 0 {
		return Binding{}, false
	}
	return r.records[0], true
}

// All returns a restartable iterator over the records in order.
func (r *QueryResult) All() iter.Seq[Binding] {
	return func(yield func(Binding) bool) {
		for _, b := range r.records {
			if !yield(b) {
				return
			}
		}
	}
}
