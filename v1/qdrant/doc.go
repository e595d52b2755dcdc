// Package qdrant implements the Qdrant-backed binding store: persistence
// and filter-based retrieval of entity relationship records ("bindings")
// through the official Qdrant Go client.
//
// # Overview
//
// The package has two layers:
//
//   - QdrantClient: a thin wrapper around the SDK handling connection
//     setup, health checking and collection management.
//   - BindingStore: the storage adapter the binding package queries run
//     against. It owns query sessions (Query), batch persistence (Save),
//     deletion (Delete) and bounded concurrent execution (QueryAll).
//
// Query sessions use the immutable builder from the binding package;
// this package contributes the executor that turns accumulated criteria
// into a Qdrant points query.
//
// # Payload Layout
//
// Binding endpoint fields are stored at the top level of the point
// payload (from_id, from_type, to_id, to_type, binding_type,
// created_at); user metadata lives under the "meta" prefix. Criteria
// conditions on anything other than the internal fields are resolved
// against "meta." automatically.
//
// # Usage
//
//	cfg := qdrant.DefaultConfig().WithCollection("bindings")
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
//	if err != nil {
//	    return err
//	}
//
//	store, err := qdrant.NewBindingStore(qdrant.BindingStoreParams{
//	    Client: client,
//	    Logger: log,
//	})
//	if err != nil {
//	    return err
//	}
//
//	res, err := store.Query().
//	    Type("member_of").
//	    Where("status", "active").
//	    Limit(50).
//	    Get(ctx)
//
// With fx, include FXModule alongside the logger module and provide a
// *qdrant.Config.
//
// # Observability
//
// WithObserver attaches an observability.Observer (the metrics package
// provides a Prometheus-backed one); WithTracer wraps query execution
// in OpenTelemetry spans. Both are optional.
package qdrant
