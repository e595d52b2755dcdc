package qdrant

import (
	"context"
	"fmt"
	"log"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// CollectionInfo is a high-level, decoupled view of a Qdrant collection,
// hiding the SDK's nested protobuf structures from the application layer.
type CollectionInfo struct {
	Name       string
	Status     string
	Vectors    uint64
	Points     uint64
	VectorSize int
	Distance   string
}

// GetCollection retrieves detailed metadata about a specific collection
// from the connected Qdrant instance.
//
// Example:
//
//	info, err := client.GetCollection(ctx, "bindings")
//	if err != nil {
//	    return err
//	}
//	log.Printf("Collection '%s': points=%d, vector_size=%d, distance=%s",
//	    info.Name, info.Points, info.VectorSize, info.Distance)
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*CollectionInfo, error) {
	if c.api == nil {
		return nil, fmt.Errorf("[Qdrant] client not initialized")
	}

	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}

	size, distance := extractVectorDetails(info)

	return &CollectionInfo{
		Name:       name,
		Status:     info.Status.String(),
		Vectors:    derefUint64(info.IndexedVectorsCount),
		Points:     derefUint64(info.PointsCount),
		VectorSize: size,
		Distance:   distance,
	}, nil
}

// ListCollections retrieves all existing collections from Qdrant and returns
// their names as a string slice.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	if c.api == nil {
		return nil, fmt.Errorf("[Qdrant] client not initialized")
	}

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	log.Printf("[Qdrant] Found %d collections", len(names))
	return names, nil
}

// extractVectorDetails safely extracts the vector size (embedding dimension)
// and distance metric (e.g., "Cosine", "Dot", "Euclid") from a Qdrant
// CollectionInfo object.
//
// Qdrant represents vector configuration data using a deeply nested protobuf
// structure with "oneof" wrappers. This helper navigates that hierarchy,
// performs type assertions, and guards against nil pointer dereferences.
// If any nested field is missing or of an unexpected type, it gracefully
// returns default values (0, "").
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return int(cfg.Params.Size), cfg.Params.Distance.String()
	}

	return 0, ""
}

// derefUint64 safely dereferences a *uint64 pointer.
// If the pointer is nil, it returns 0 instead of panicking.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
