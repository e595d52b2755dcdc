// Package binding provides an immutable fluent query builder and result
// model for entity relationship records ("bindings") stored in a vector
// database.
//
// # Overview
//
// A [Query] accumulates retrieval criteria (endpoint filters, a
// relationship type, metadata conditions, sort and pagination) without
// touching a database. Every chainable operation returns a new Query and
// leaves its receiver unchanged, so builder chains can be forked and
// reused freely:
//
//	base := store.Query().Type("member_of")
//	recent := base.WhereOp("created_at", binding.OpGreaterThan, cutoff)
//	paged := base.OrderBy("created_at", binding.SortDesc).Limit(20)
//	// base is still untouched and usable
//
// Execution is deferred: the storage adapter that owns the query attaches
// an [Executor] via [Query.WithExecutor], and nothing runs until
// [Query.Get] hands the accumulated [Criteria] snapshot to it. Executor
// failures pass through Get unchanged.
//
// # Usage
//
//	q, err := store.Query().From(user)
//	if err != nil {
//	    return err
//	}
//	q, err = q.To("document", docID)
//	if err != nil {
//	    return err
//	}
//	res, err := q.Type("authored").
//	    Where("status", "active").
//	    OrderBy("created_at", binding.SortDesc).
//	    Limit(50).
//	    Get(ctx)
//	if err != nil {
//	    return err
//	}
//	for b := range res.All() {
//	    // ...
//	}
//
// From and To accept an [Entity], any object exposing id/type accessors,
// or a bare type-name string plus an explicit id.
//
// # Capability Tier
//
// The builder deliberately exposes the full surface of the binding query
// model, but the current backend tier only implements conjunctive
// filter retrieval. Operations outside that tier fail immediately with
// an error matching [ErrUnsupported] (an [*UnsupportedError] naming the
// capability) and never reach the executor:
//
//	| Operation            | Capability                      |
//	|----------------------|---------------------------------|
//	| OrWhere              | or-condition groups             |
//	| First                | single-record retrieval         |
//	| Count                | server-side counting            |
//	| Exists               | existence probing               |
//	| NearText             | semantic text search            |
//	| NearVector           | vector similarity search        |
//
// # Errors
//
// Match with errors.Is against [ErrInvalidArgument], [ErrNoExecutor] and
// [ErrUnsupported]. The package never logs; callers and adapters decide
// how failures surface.
package binding
