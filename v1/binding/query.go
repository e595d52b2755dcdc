package binding

import (
	"context"
	"strings"
)

// Executor performs the actual database round trip for an accumulated
// Criteria and returns the matching records in backend order. The
// storage adapter that owns the query wires one in via WithExecutor;
// the builder itself never talks to a database.
type Executor func(ctx context.Context, c Criteria) ([]Binding, error)

// DefaultCertainty is the similarity threshold the semantic search
// surface (NearText / NearVector) will assume once a backend tier
// provides it.
const DefaultCertainty = 0.7

// Query is an immutable accumulator of retrieval criteria. Every
// chainable operation returns a new instance and leaves its receiver
// untouched, so partially built queries can be forked and shared
// across goroutines without synchronization.
//
// Nothing executes until Get is called; the accumulated criteria are
// then handed to the attached Executor in a single snapshot.
type Query struct {
	client   any
	exec     Executor
	criteria Criteria
}

// NewQuery creates a query bound to a backend client handle and a
// target collection, with no filters set. The handle is opaque to this
// package; executors that need it can retrieve it via Client.
func NewQuery(client any, collection string) *Query {
	return &Query{
		client:   client,
		criteria: Criteria{Collection: collection},
	}
}

// clone copies the query including its conditions slice, so that an
// append on the copy can never reach into the receiver's backing array.
func (q *Query) clone() *Query {
	cp := *q
	if q.criteria.Conditions != nil {
		cp.criteria.Conditions = make([]Condition, len(q.criteria.Conditions), len(q.criteria.Conditions)+1)
		copy(cp.criteria.Conditions, q.criteria.Conditions)
	}
	if q.criteria.Limit != nil {
		v := *q.criteria.Limit
		cp.criteria.Limit = &v
	}
	if q.criteria.Offset != nil {
		v := *q.criteria.Offset
		cp.criteria.Offset = &v
	}
	if q.criteria.Sort != nil {
		v := *q.criteria.Sort
		cp.criteria.Sort = &v
	}
	return &cp
}

// Client returns the opaque backend handle the query was created with.
func (q *Query) Client() any {
	return q.client
}

// Collection returns the target collection name.
func (q *Query) Collection() string {
	return q.criteria.Collection
}

// WithExecutor returns a query that will run Get through exec.
func (q *Query) WithExecutor(exec Executor) *Query {
	cp := q.clone()
	cp.exec = exec
	return cp
}

// From restricts results to edges originating at the given entity.
// v may be an Entity, any object exposing id/type accessors, or a bare
// type-name string accompanied by an explicit id. Calling From again
// replaces the previous source filter.
func (q *Query) From(v any, id ...string) (*Query, error) {
	ep, err := resolveEndpoint(v, id...)
	if err != nil {
		return nil, err
	}
	cp := q.clone()
	cp.criteria.FromID = ep.id
	cp.criteria.FromType = ep.typ
	return cp, nil
}

// To restricts results to edges pointing at the given entity. Accepts
// the same shapes as From.
func (q *Query) To(v any, id ...string) (*Query, error) {
	ep, err := resolveEndpoint(v, id...)
	if err != nil {
		return nil, err
	}
	cp := q.clone()
	cp.criteria.ToID = ep.id
	cp.criteria.ToType = ep.typ
	return cp, nil
}

// Type restricts results to edges of the given relationship type.
func (q *Query) Type(bindingType string) *Query {
	cp := q.clone()
	cp.criteria.BindingType = bindingType
	return cp
}

// Where appends an equality condition on a metadata field.
func (q *Query) Where(field string, value any) *Query {
	return q.WhereOp(field, OpEqual, value)
}

// WhereOp appends a metadata condition with an explicit operator.
// Conditions accumulate in call order and are combined conjunctively.
func (q *Query) WhereOp(field string, op Operator, value any) *Query {
	cp := q.clone()
	cp.criteria.Conditions = append(cp.criteria.Conditions, Condition{
		Field:    field,
		Operator: op,
		Value:    value,
	})
	return cp
}

// WhereIn appends a set-membership condition. The values slice is
// copied, so the caller may keep mutating its own.
func (q *Query) WhereIn(field string, values []any) *Query {
	vs := make([]any, len(values))
	copy(vs, values)
	return q.WhereOp(field, OpIn, vs)
}

// WhereBetween appends an inclusive range condition.
func (q *Query) WhereBetween(field string, min, max any) *Query {
	return q.WhereOp(field, OpBetween, Range{Min: min, Max: max})
}

// WhereExists appends a condition requiring the field to be present
// and non-empty on the record.
func (q *Query) WhereExists(field string) *Query {
	return q.WhereOp(field, OpExists, nil)
}

// WhereNull appends a condition requiring the field to be null or
// absent on the record.
func (q *Query) WhereNull(field string) *Query {
	return q.WhereOp(field, OpIsNull, nil)
}

// OrWhere would open a disjunctive condition group. The current
// backend tier evaluates all conditions conjunctively, so this always
// fails with an unsupported-capability error.
func (q *Query) OrWhere(func(*Query) *Query) (*Query, error) {
	return nil, errUnsupported("or-condition groups (orWhere)")
}

// OrderBy sets the single sort key, replacing any previous one. The
// direction defaults to ascending and is lowercased but not validated;
// an unknown direction surfaces as an executor failure.
func (q *Query) OrderBy(field string, direction ...string) *Query {
	dir := SortAsc
	if len(direction) > 0 && direction[0] != "" {
		dir = strings.ToLower(direction[0])
	}
	cp := q.clone()
	cp.criteria.Sort = &Sort{Field: field, Direction: dir}
	return cp
}

// Limit caps the number of returned records. Not range-checked.
func (q *Query) Limit(n int) *Query {
	cp := q.clone()
	cp.criteria.Limit = &n
	return cp
}

// Offset skips the given number of records. Not range-checked.
func (q *Query) Offset(n int) *Query {
	cp := q.clone()
	cp.criteria.Offset = &n
	return cp
}

// NearText would add a semantic concept-search clause with an optional
// certainty threshold (DefaultCertainty when omitted). Not available
// in the current backend tier.
func (q *Query) NearText(concepts []string, certainty ...float64) (*Query, error) {
	return nil, errUnsupported("semantic text search (nearText)")
}

// NearVector would add a raw vector-similarity clause with an optional
// certainty threshold (DefaultCertainty when omitted). Not available
// in the current backend tier.
func (q *Query) NearVector(vector []float32, certainty ...float64) (*Query, error) {
	return nil, errUnsupported("vector similarity search (nearVector)")
}

// Reset returns a query with all criteria cleared but the client,
// collection and executor bindings kept, ready for the next session.
func (q *Query) Reset() *Query {
	cp := NewQuery(q.client, q.criteria.Collection)
	cp.exec = q.exec
	return cp
}

// Criteria returns a snapshot of the accumulated criteria. The
// conditions slice is copied; mutating the snapshot does not affect
// the query.
func (q *Query) Criteria() Criteria {
	c := q.criteria
	if q.criteria.Conditions != nil {
		c.Conditions = make([]Condition, len(q.criteria.Conditions))
		copy(c.Conditions, q.criteria.Conditions)
	}
	return c
}

// Get executes the query through the attached executor and wraps its
// records into a QueryResult. Fails with ErrNoExecutor when no
// executor was attached; executor failures are returned unchanged.
func (q *Query) Get(ctx context.Context) (*QueryResult, error) {
	if q.exec == nil {
		return nil, ErrNoExecutor
	}
	records, err := q.exec(ctx, q.Criteria())
	if err != nil {
		return nil, err
	}
	return NewQueryResult(records), nil
}

// First would fetch only the first matching record. Not available in
// the current backend tier; use Get and QueryResult.First instead.
func (q *Query) First(ctx context.Context) (Binding, error) {
	return Binding{}, errUnsupported("single-record retrieval (first)")
}

// Count would return the number of matches without fetching them. Not
// available in the current backend tier.
func (q *Query) Count(ctx context.Context) (int64, error) {
	return 0, errUnsupported("server-side counting (count)")
}

// Exists would report whether any record matches. Not available in the
// current backend tier.
func (q *Query) Exists(ctx context.Context) (bool, error) {
	return false, errUnsupported("existence probing (exists)")
}
