package binding

import "time"

// Binding is a typed edge between two domain entities with attached metadata.
// It is the record every query in this package produces and every store
// adapter persists. The transport-level representation (payload layout,
// vector handling) is owned by the adapter, not by this package.
type Binding struct {
	// ID is the unique identifier of the stored relationship record.
	ID string `json:"id"`

	// FromID / FromType identify the source-side entity of the edge.
	FromID   string `json:"fromId"`
	FromType string `json:"fromType"`

	// ToID / ToType identify the target-side entity of the edge.
	ToID   string `json:"toId"`
	ToType string `json:"toType"`

	// Type is the relationship type (e.g. "member_of", "depends_on").
	Type string `json:"type"`

	// Metadata carries arbitrary user-defined attributes of the edge.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Vector is the optional embedding stored with the record. Only
	// populated when the adapter was asked to return vectors.
	Vector []float32 `json:"vector,omitempty"`

	// Score is the similarity score reported by the backend, if any.
	Score float32 `json:"score,omitempty"`

	// CreatedAt is the creation timestamp of the record.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Operator identifies how a metadata condition compares its field
// against its value.
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpGreaterThan    Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLessThan       Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpIn             Operator = "IN"
	OpBetween        Operator = "BETWEEN"
	OpExists         Operator = "EXISTS"
	OpIsNull         Operator = "IS_NULL"
)

// Condition is a single conjunctive metadata predicate. Conditions are
// kept in insertion order; order may affect the generated backend query
// but not its logical result.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	// Value holds the comparison payload: a scalar for comparison
	// operators, a []any for IN, a Range for BETWEEN, and nil for
	// EXISTS / IS_NULL.
	Value any `json:"value,omitempty"`
}

// Range is the [Min, Max] payload of a BETWEEN condition. Both bounds
// are inclusive.
type Range struct {
	Min any `json:"min"`
	Max any `json:"max"`
}

// Sort directions. OrderBy lowercases whatever it is given but performs
// no validation; anything other than these two values is the executing
// backend's problem.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort is a single-key sort specification.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Criteria is the accumulated, not-yet-executed specification of a
// query: filters, metadata conditions, sort and pagination. It is the
// seam between the builder and the executor that turns it into an
// actual database round trip.
//
// Empty strings mean "unset" for the endpoint and type filters; nil
// pointers mean "unset" for pagination and sort.
type Criteria struct {
	// Collection is the target collection the owning store bound the
	// query to at construction time.
	Collection string `json:"collection"`

	FromID   string `json:"fromId,omitempty"`
	FromType string `json:"fromType,omitempty"`
	ToID     string `json:"toId,omitempty"`
	ToType   string `json:"toType,omitempty"`

	// BindingType filters on the relationship type of the edge.
	BindingType string `json:"bindingType,omitempty"`

	// Conditions are conjunctive metadata predicates in call order.
	Conditions []Condition `json:"conditions,omitempty"`

	Limit  *int  `json:"limit,omitempty"`
	Offset *int  `json:"offset,omitempty"`
	Sort   *Sort `json:"sort,omitempty"`
}
