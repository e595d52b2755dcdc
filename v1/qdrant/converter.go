package qdrant

import (
	"fmt"
	"math"
	"strings"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/vectorbind/std/v1/binding"
)

// MetaPayloadPrefix is the prefix for user-defined binding metadata.
// Metadata fields are stored under "meta" in the Qdrant payload; the
// binding endpoint fields live at the top level.
const MetaPayloadPrefix = "meta"

// Top-level payload keys for the binding endpoint fields.
const (
	fieldFromID      = "from_id"
	fieldFromType    = "from_type"
	fieldToID        = "to_id"
	fieldToType      = "to_type"
	fieldBindingType = "binding_type"
	fieldCreatedAt   = "created_at"
)

// internalFields are the payload keys owned by the store. Everything
// else a criteria condition names is treated as user metadata and
// resolved under the "meta." prefix.
var internalFields = map[string]bool{
	fieldFromID:      true,
	fieldFromType:    true,
	fieldToID:        true,
	fieldToType:      true,
	fieldBindingType: true,
	fieldCreatedAt:   true,
}

// ── Payload Conversion ───────────────────────────────────────────────────────

// bindingPayload creates a Qdrant payload with separated internal and user
// fields. Endpoint fields are stored at the top level, user metadata under
// the "meta" prefix.
//
// Example:
//
//	{"from_id": "u-1", "from_type": "user", ..., "meta": {"role": "admin"}}
func bindingPayload(b binding.Binding) map[string]any {
	payload := map[string]any{
		fieldFromID:      b.FromID,
		fieldFromType:    b.FromType,
		fieldToID:        b.ToID,
		fieldToType:      b.ToType,
		fieldBindingType: b.Type,
	}

	if !b.CreatedAt.IsZero() {
		payload[fieldCreatedAt] = b.CreatedAt.UTC().Format(time.RFC3339Nano)
	}

	if len(b.Metadata) > 0 {
		payload[MetaPayloadPrefix] = b.Metadata
	}

	return payload
}

// resolveFieldKey returns the full payload path for a condition field.
// Internal fields: "binding_type" -> "binding_type"
// User fields: "role" -> "meta.role"
func resolveFieldKey(key string) string {
	if internalFields[key] {
		return key
	}
	// Prevent double-prefixing
	if strings.HasPrefix(key, MetaPayloadPrefix+".") {
		return key
	}
	return MetaPayloadPrefix + "." + key
}

// ── Filter Conversion ────────────────────────────────────────────────────────

// criteriaFilter converts accumulated binding criteria into a Qdrant filter.
// Endpoint and type filters become Must match conditions; metadata
// conditions are mapped per operator. Unknown operators surface as errors,
// never as silently dropped conditions.
func criteriaFilter(c binding.Criteria) (*qdrant.Filter, error) {
	filter := &qdrant.Filter{}

	endpoint := []struct {
		key   string
		value string
	}{
		{fieldFromID, c.FromID},
		{fieldFromType, c.FromType},
		{fieldToID, c.ToID},
		{fieldToType, c.ToType},
		{fieldBindingType, c.BindingType},
	}
	for _, f := range endpoint {
		if f.value != "" {
			filter.Must = append(filter.Must, qdrant.NewMatch(f.key, f.value))
		}
	}

	for _, cond := range c.Conditions {
		must, mustNot, err := convertCondition(cond)
		if err != nil {
			return nil, err
		}
		filter.Must = append(filter.Must, must...)
		filter.MustNot = append(filter.MustNot, mustNot...)
	}

	if len(filter.Must) == 0 && len(filter.MustNot) == 0 {
		return nil, nil
	}
	return filter, nil
}

// convertCondition maps a single criteria condition onto Qdrant conditions.
// Negated operators ("!=", EXISTS via is-empty) land in the MustNot clause.
func convertCondition(c binding.Condition) (must, mustNot []*qdrant.Condition, err error) {
	key := resolveFieldKey(c.Field)

	switch c.Operator {
	case binding.OpEqual:
		cond, err := matchCondition(key, c.Value)
		if err != nil {
			return nil, nil, err
		}
		return []*qdrant.Condition{cond}, nil, nil

	case binding.OpNotEqual:
		cond, err := matchCondition(key, c.Value)
		if err != nil {
			return nil, nil, err
		}
		return nil, []*qdrant.Condition{cond}, nil

	case binding.OpGreaterThan, binding.OpGreaterOrEqual, binding.OpLessThan, binding.OpLessOrEqual:
		cond, err := rangeCondition(key, c.Operator, c.Value)
		if err != nil {
			return nil, nil, err
		}
		return []*qdrant.Condition{cond}, nil, nil

	case binding.OpIn:
		cond, err := matchAnyCondition(key, c.Value)
		if err != nil {
			return nil, nil, err
		}
		return []*qdrant.Condition{cond}, nil, nil

	case binding.OpBetween:
		cond, err := betweenCondition(key, c.Value)
		if err != nil {
			return nil, nil, err
		}
		return []*qdrant.Condition{cond}, nil, nil

	case binding.OpExists:
		// Present and non-empty: negate Qdrant's is-empty marker.
		return nil, []*qdrant.Condition{qdrant.NewIsEmpty(key)}, nil

	case binding.OpIsNull:
		return []*qdrant.Condition{qdrant.NewIsNull(key)}, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported condition operator %q on field %q", c.Operator, c.Field)
	}
}

// matchCondition builds an exact-match condition for the supported payload
// scalar types.
func matchCondition(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v), nil
	case bool:
		return qdrant.NewMatchBool(key, v), nil
	case int:
		return qdrant.NewMatchInt(key, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(key, v), nil
	case float64:
		// JSON numbers decode as float64. Only integral values have an
		// exact match in Qdrant; a fractional one would silently truncate.
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("equality on non-integral float %v for field %q, use a range or BETWEEN operator", v, key)
		}
		return qdrant.NewMatchInt(key, int64(v)), nil
	default:
		return nil, fmt.Errorf("unsupported match value type %T for field %q", value, key)
	}
}

// matchAnyCondition builds an IN condition. The element type is detected
// from the first value, keyword and integer payloads are supported.
func matchAnyCondition(key string, value any) (*qdrant.Condition, error) {
	values, ok := value.([]any)
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("IN condition on field %q requires a non-empty value list", key)
	}

	switch values[0].(type) {
	case string:
		strs := make([]string, len(values))
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("mixed value types in IN condition on field %q", key)
			}
			strs[i] = s
		}
		return qdrant.NewMatchKeywords(key, strs...), nil

	case int, int64, float64:
		ints := make([]int64, len(values))
		for i, v := range values {
			n, ok := toInt64(v)
			if !ok {
				return nil, fmt.Errorf("mixed value types in IN condition on field %q", key)
			}
			ints[i] = n
		}
		return qdrant.NewMatchInts(key, ints...), nil
	}

	return nil, fmt.Errorf("unsupported IN value type %T for field %q", values[0], key)
}

// rangeCondition builds a single-bound numeric range for the comparison
// operators.
func rangeCondition(key string, op binding.Operator, value any) (*qdrant.Condition, error) {
	n, ok := toFloat64(value)
	if !ok {
		return nil, fmt.Errorf("comparison operator %q on field %q requires a numeric value, got %T", op, key, value)
	}

	r := &qdrant.Range{}
	switch op {
	case binding.OpGreaterThan:
		r.Gt = &n
	case binding.OpGreaterOrEqual:
		r.Gte = &n
	case binding.OpLessThan:
		r.Lt = &n
	case binding.OpLessOrEqual:
		r.Lte = &n
	}

	return qdrant.NewRange(key, r), nil
}

// betweenCondition builds an inclusive [min, max] range. Numeric bounds map
// to a numeric range, time.Time bounds to a datetime range.
func betweenCondition(key string, value any) (*qdrant.Condition, error) {
	bounds, ok := value.(binding.Range)
	if !ok {
		return nil, fmt.Errorf("BETWEEN condition on field %q requires a range value, got %T", key, value)
	}

	if minT, ok := bounds.Min.(time.Time); ok {
		maxT, ok := bounds.Max.(time.Time)
		if !ok {
			return nil, fmt.Errorf("mixed bound types in BETWEEN condition on field %q", key)
		}
		return qdrant.NewDatetimeRange(key, &qdrant.DatetimeRange{
			Gte: timestamppb.New(minT),
			Lte: timestamppb.New(maxT),
		}), nil
	}

	min, okMin := toFloat64(bounds.Min)
	max, okMax := toFloat64(bounds.Max)
	if !okMin || !okMax {
		return nil, fmt.Errorf("BETWEEN condition on field %q requires numeric or time bounds, got %T and %T", key, bounds.Min, bounds.Max)
	}

	return qdrant.NewRange(key, &qdrant.Range{Gte: &min, Lte: &max}), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ── Result Conversion ────────────────────────────────────────────────────────

// pointToBinding converts a Qdrant scored point back into a binding record.
func pointToBinding(p *qdrant.ScoredPoint) (binding.Binding, error) {
	id, err := extractPointID(p.Id)
	if err != nil {
		return binding.Binding{}, err
	}

	payload := convertPayload(p.Payload)

	b := binding.Binding{
		ID:       id,
		FromID:   stringField(payload, fieldFromID),
		FromType: stringField(payload, fieldFromType),
		ToID:     stringField(payload, fieldToID),
		ToType:   stringField(payload, fieldToType),
		Type:     stringField(payload, fieldBindingType),
		Score:    p.Score,
	}

	if raw := stringField(payload, fieldCreatedAt); raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			b.CreatedAt = ts
		}
	}

	if meta, ok := payload[MetaPayloadPrefix].(map[string]any); ok {
		b.Metadata = meta
	}

	return b, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
