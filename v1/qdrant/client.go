package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client,
// providing the connection handling the binding store builds on.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Manage the binding collection (create if missing).
//   • Offer a safe API suitable for Fx dependency injection.
//

// QdrantClient wraps the official Qdrant Go client and provides the
// connection and collection management the binding store builds on.
type QdrantClient struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

const (
	defaultBatchSize     = 200  // default chunk size for batch upserts
	maxConcurrentQueries = 10   // default maximum concurrent query executions
	queryPageSize        = 1000 // page size for queries without an explicit limit
)

// NewQdrantClient constructs a new instance of QdrantClient and validates
// connectivity via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
//
// Example:
//
//	client, _ := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", p.Config.Endpoint, p.Config.Port)

	// Set default port if not specified
	port := p.Config.Port
	if port == 0 {
		port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   p.Config.Endpoint,
		Port:                   port,
		APIKey:                 p.Config.ApiKey,
		SkipCompatibilityCheck: !p.Config.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:     client,
		cfg:     p.Config,
		started: true,
	}

	if err := qc.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return qc, nil
}

// healthCheck verifies the availability of the Qdrant service
// by calling the `/healthz` endpoint through the SDK.
//
// It should be lightweight and fast — typically used during startup or readiness probes.
func (c *QdrantClient) healthCheck() error {
	if !c.started {
		return fmt.Errorf("[Qdrant] client not started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)", resp.Title, resp.Version, c.cfg.Endpoint)

	return nil
}

// EnsureCollection verifies if the configured binding collection exists,
// and creates it if missing.
//
// It’s safe to call this multiple times — if the collection already exists,
// the function exits early. This simplifies startup logic for services that
// bootstrap their own collections.
func (c *QdrantClient) EnsureCollection(ctx context.Context) error {
	name := c.cfg.Collection
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		log.Printf("[Qdrant] Collection '%s' already exists", name)
		return c.ensureFieldIndexes(ctx, name)
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.VectorSize(),
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return c.ensureFieldIndexes(ctx, name)
}

// ensureFieldIndexes creates the payload indexes ordered retrieval depends
// on. Qdrant rejects order_by on any field without a range-capable index;
// created_at is the only internal field with an orderable type. Index
// creation is idempotent, so calling this on every startup is safe.
func (c *QdrantClient) ensureFieldIndexes(ctx context.Context, name string) error {
	wait := true
	_, err := c.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: name,
		FieldName:      fieldCreatedAt,
		FieldType:      qdrant.FieldType_FieldTypeDatetime.Enum(),
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to index field '%s': %w", fieldCreatedAt, err)
	}
	return nil
}

// Client returns the underlying Qdrant SDK client.
// This is useful for direct access to low-level operations.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Collection returns the configured binding collection name.
func (c *QdrantClient) Collection() string {
	return c.cfg.Collection
}

// VectorSize returns the configured vector dimension, falling back to the
// default when unset.
func (c *QdrantClient) VectorSize() uint64 {
	if c.cfg.VectorSize == 0 {
		return 1536
	}
	return c.cfg.VectorSize
}

// Close gracefully shuts down the Qdrant client.
//
// Since the official Qdrant Go SDK doesn't maintain persistent connections,
// this is currently a no-op. It exists for lifecycle symmetry and future safety.
func (c *QdrantClient) Close() error {
	if !c.started {
		return nil
	}

	log.Println("[Qdrant] closing client (no-op)")
	return nil
}
