package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	traceSpan "go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/vectorbind/std/v1/binding"
	"github.com/vectorbind/std/v1/logger"
	"github.com/vectorbind/std/v1/observability"
	"github.com/vectorbind/std/v1/tracer"
)

// BindingStore persists and queries entity relationship records in the
// configured Qdrant collection. It owns the query sessions: Query hands
// out an immutable binding.Query pre-wired with this store's executor,
// so nothing touches the database until Get runs.
type BindingStore struct {
	client   *QdrantClient
	log      *logger.Logger
	observer observability.Observer
	tracer   *tracer.Tracer
}

// BindingStoreParams defines dependencies needed to construct the store.
type BindingStoreParams struct {
	fx.In

	Client *QdrantClient
	Logger *logger.Logger
}

// NewBindingStore initializes and returns a new binding store.
//
// It verifies that the target collection exists, creating it if necessary.
func NewBindingStore(p BindingStoreParams) (*BindingStore, error) {
	store := &BindingStore{
		client: p.Client,
		log:    p.Logger,
	}

	if err := p.Client.EnsureCollection(context.Background()); err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to ensure collection: %w", err)
	}

	p.Logger.Info("binding store ready", nil, map[string]interface{}{
		"collection": p.Client.Collection(),
	})
	return store, nil
}

// WithObserver returns a store that notifies o after every operation.
func (s *BindingStore) WithObserver(o observability.Observer) *BindingStore {
	cp := *s
	cp.observer = o
	return &cp
}

// WithTracer returns a store that wraps every operation in a span.
func (s *BindingStore) WithTracer(t *tracer.Tracer) *BindingStore {
	cp := *s
	cp.tracer = t
	return &cp
}

// Query starts a new query session: an empty criteria accumulator bound
// to this store's collection and executor. The returned query is
// immutable; see the binding package for the builder surface.
func (s *BindingStore) Query() *binding.Query {
	return binding.NewQuery(s.client, s.client.Collection()).WithExecutor(s.execute)
}

// execute is the binding.Executor behind every query session. It turns
// the accumulated criteria into a filter-only points query and maps the
// response back into binding records.
func (s *BindingStore) execute(ctx context.Context, c binding.Criteria) (records []binding.Binding, err error) {
	start := time.Now()
	defer func() {
		s.observe("query", c.Collection, c.BindingType, time.Since(start), err, int64(len(records)), nil)
	}()

	if s.tracer != nil {
		var span traceSpan.Span
		ctx, span = s.tracer.StartSpan(ctx, "qdrant.query")
		defer func() {
			if err != nil {
				s.tracer.RecordErrorOnSpan(span, err)
			}
			span.End()
		}()
		s.tracer.SetAttributes(span, map[string]interface{}{
			"collection":   c.Collection,
			"binding.type": c.BindingType,
		})
	}

	filter, err := criteriaFilter(c)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] invalid query criteria: %w", err)
	}

	req := &qdrant.QueryPoints{
		CollectionName: c.Collection,
		Filter:         filter,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if c.Sort != nil {
		dir := qdrant.Direction_Asc
		if c.Sort.Direction == binding.SortDesc {
			dir = qdrant.Direction_Desc
		}
		req.Query = qdrant.NewQueryOrderBy(&qdrant.OrderBy{
			Key:       resolveFieldKey(c.Sort.Field),
			Direction: &dir,
		})
	}

	var points []*qdrant.ScoredPoint
	if c.Limit != nil {
		limit := uint64(*c.Limit)
		req.Limit = &limit
		if c.Offset != nil {
			offset := uint64(*c.Offset)
			req.Offset = &offset
		}
		points, err = s.client.api.Query(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] query failed: %w", err)
		}
	} else {
		// The points query applies a server-side default limit when none
		// is set, so an unbounded query has to page explicitly.
		offset := uint64(0)
		if c.Offset != nil {
			offset = uint64(*c.Offset)
		}
		for {
			limit := uint64(queryPageSize)
			pageOffset := offset
			req.Limit = &limit
			req.Offset = &pageOffset

			page, qErr := s.client.api.Query(ctx, req)
			if qErr != nil {
				return nil, fmt.Errorf("[Qdrant] query failed: %w", qErr)
			}
			points = append(points, page...)
			if len(page) < queryPageSize {
				break
			}
			offset += uint64(len(page))
		}
	}

	records = make([]binding.Binding, 0, len(points))
	for _, p := range points {
		b, convErr := pointToBinding(p)
		if convErr != nil {
			return nil, fmt.Errorf("[Qdrant] parse failed: %w", convErr)
		}
		records = append(records, b)
	}

	s.log.Debug("query executed", nil, map[string]interface{}{
		"collection": c.Collection,
		"records":    len(records),
	})
	return records, nil
}

// QueryAll executes several query sessions concurrently, bounded by
// maxConcurrentQueries, and returns results in request order. The first
// failure cancels the remaining executions.
func (s *BindingStore) QueryAll(ctx context.Context, queries ...*binding.Query) ([]*binding.QueryResult, error) {
	results := make([]*binding.QueryResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for i, q := range queries {
		g.Go(func() error {
			res, err := q.Get(ctx)
			if err != nil {
				return fmt.Errorf("query [%d]: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Save upserts binding records in batches.
//
// This method is safe to call for large datasets — it automatically splits
// the upserts into smaller chunks (defaultBatchSize) and performs multiple
// blocking upserts sequentially. Every record must carry an ID.
func (s *BindingStore) Save(ctx context.Context, bindings ...binding.Binding) (err error) {
	if len(bindings) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		s.observe("save", s.client.Collection(), "", time.Since(start), err, int64(len(bindings)), nil)
	}()

	size := s.client.VectorSize()
	for i, b := range bindings {
		if b.ID == "" {
			return fmt.Errorf("[Qdrant] binding [%d] has no id", i)
		}
		if uint64(len(b.Vector)) != size {
			return fmt.Errorf("[Qdrant] binding [%d] has vector dimension %d, want %d", i, len(b.Vector), size)
		}
	}

	for batchStart := 0; batchStart < len(bindings); batchStart += defaultBatchSize {
		end := batchStart + defaultBatchSize
		if end > len(bindings) {
			end = len(bindings)
		}

		if err := s.upsertBatch(ctx, bindings[batchStart:end]); err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d]: %w", batchStart, end, err)
		}
		s.log.Debug("saved binding batch", nil, map[string]interface{}{
			"collection": s.client.Collection(),
			"from":       batchStart,
			"to":         end,
		})
	}

	return nil
}

// upsertBatch sends a single blocking Upsert (Wait=true) for a slice of
// bindings, so data is persisted before returning.
func (s *BindingStore) upsertBatch(ctx context.Context, batch []binding.Binding) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, b := range batch {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(b.ID),
			Vectors: qdrant.NewVectors(b.Vector...),
			Payload: qdrant.NewValueMap(bindingPayload(b)),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: s.client.Collection(),
		Points:         points,
		Wait:           &wait,
	}

	if _, err := s.client.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// Delete removes binding records from the collection by their IDs.
//
// It constructs a DeletePoints request containing a list of PointIds and
// waits synchronously for completion.
func (s *BindingStore) Delete(ctx context.Context, ids []string) (err error) {
	if len(ids) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		s.observe("delete", s.client.Collection(), "", time.Since(start), err, int64(len(ids)), nil)
	}()

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: s.client.Collection(),
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}

	resp, err := s.client.api.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w", err)
	}

	s.log.Debug("delete completed", nil, map[string]interface{}{
		"status":     resp.Status.String(),
		"collection": s.client.Collection(),
	})
	return nil
}

// observe notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: the collection being operated on
//   - subResource: additional context like the binding type filter
func (s *BindingStore) observe(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "qdrant",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
