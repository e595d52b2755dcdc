package qdrant

import (
	"testing"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/vectorbind/std/v1/binding"
)

func TestCriteriaFilter_EmptyCriteria(t *testing.T) {
	result, err := criteriaFilter(binding.Criteria{Collection: "bindings"})
	if err != nil {
		t.Fatal(err)
	}
	if result != nil {
		t.Errorf("expected nil filter, got %v", result)
	}
}

func TestCriteriaFilter_EndpointFilters(t *testing.T) {
	c := binding.Criteria{
		Collection:  "bindings",
		FromID:      "u-1",
		FromType:    "user",
		ToID:        "g-1",
		ToType:      "group",
		BindingType: "member_of",
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 5 {
		t.Errorf("expected 5 Must conditions, got %d", len(result.Must))
	}
	if len(result.MustNot) != 0 {
		t.Errorf("expected 0 MustNot conditions, got %d", len(result.MustNot))
	}
}

func TestCriteriaFilter_PartialEndpoint(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		FromID:     "u-1",
		FromType:   "user",
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 2 {
		t.Errorf("expected 2 Must conditions, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_EqualityAndNegation(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "status", Operator: binding.OpEqual, Value: "active"},
			{Field: "archived", Operator: binding.OpNotEqual, Value: true},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
	if len(result.MustNot) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(result.MustNot))
	}
}

func TestCriteriaFilter_EqualityRejectsFractionalFloat(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "weight", Operator: binding.OpEqual, Value: 3.9},
		},
	}
	if _, err := criteriaFilter(c); err == nil {
		t.Error("expected error for fractional float equality value")
	}
}

func TestCriteriaFilter_EqualityAcceptsIntegralFloat(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "weight", Operator: binding.OpEqual, Value: 3.0},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_ComparisonOperators(t *testing.T) {
	ops := []binding.Operator{
		binding.OpGreaterThan,
		binding.OpGreaterOrEqual,
		binding.OpLessThan,
		binding.OpLessOrEqual,
	}

	for _, op := range ops {
		c := binding.Criteria{
			Collection: "bindings",
			Conditions: []binding.Condition{
				{Field: "weight", Operator: op, Value: 10},
			},
		}
		result, err := criteriaFilter(c)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if len(result.Must) != 1 {
			t.Errorf("%s: expected 1 Must condition, got %d", op, len(result.Must))
		}
	}
}

func TestCriteriaFilter_ComparisonRequiresNumber(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "weight", Operator: binding.OpGreaterThan, Value: "heavy"},
		},
	}
	if _, err := criteriaFilter(c); err == nil {
		t.Error("expected error for non-numeric comparison value")
	}
}

func TestCriteriaFilter_InCondition(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "status", Operator: binding.OpIn, Value: []any{"active", "pending"}},
			{Field: "priority", Operator: binding.OpIn, Value: []any{1, 2, 3}},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 2 {
		t.Errorf("expected 2 Must conditions, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_InConditionRejectsEmptyList(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "status", Operator: binding.OpIn, Value: []any{}},
		},
	}
	if _, err := criteriaFilter(c); err == nil {
		t.Error("expected error for empty IN value list")
	}
}

func TestCriteriaFilter_BetweenNumeric(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "weight", Operator: binding.OpBetween, Value: binding.Range{Min: 1, Max: 10}},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 1 {
		t.Fatalf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_BetweenTime(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "created_at", Operator: binding.OpBetween, Value: binding.Range{Min: start, Max: end}},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Must) != 1 {
		t.Fatalf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_ExistsAndNull(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "reviewed_by", Operator: binding.OpExists},
			{Field: "deleted_at", Operator: binding.OpIsNull},
		},
	}

	result, err := criteriaFilter(c)
	if err != nil {
		t.Fatal(err)
	}
	// EXISTS lands in MustNot as a negated is-empty marker
	if len(result.MustNot) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(result.MustNot))
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestCriteriaFilter_UnknownOperator(t *testing.T) {
	c := binding.Criteria{
		Collection: "bindings",
		Conditions: []binding.Condition{
			{Field: "status", Operator: binding.Operator("LIKE"), Value: "act%"},
		},
	}
	if _, err := criteriaFilter(c); err == nil {
		t.Error("expected error for unknown operator")
	}
}

func TestResolveFieldKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"binding_type", "binding_type"},
		{"from_id", "from_id"},
		{"created_at", "created_at"},
		{"role", "meta.role"},
		{"meta.role", "meta.role"},
	}
	for _, tc := range cases {
		if got := resolveFieldKey(tc.in); got != tc.want {
			t.Errorf("resolveFieldKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBindingPayloadLayout(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := binding.Binding{
		ID:        "b-1",
		FromID:    "u-1",
		FromType:  "user",
		ToID:      "g-1",
		ToType:    "group",
		Type:      "member_of",
		CreatedAt: created,
		Metadata:  map[string]any{"role": "admin"},
	}

	payload := bindingPayload(b)

	if payload["from_id"] != "u-1" || payload["to_type"] != "group" || payload["binding_type"] != "member_of" {
		t.Errorf("endpoint fields not at top level: %v", payload)
	}
	meta, ok := payload["meta"].(map[string]any)
	if !ok || meta["role"] != "admin" {
		t.Errorf("metadata not nested under meta: %v", payload)
	}
	if payload["created_at"] != created.Format(time.RFC3339Nano) {
		t.Errorf("unexpected created_at: %v", payload["created_at"])
	}
}

func TestBindingPayloadOmitsEmpty(t *testing.T) {
	payload := bindingPayload(binding.Binding{ID: "b-1", FromID: "u-1"})

	if _, ok := payload["meta"]; ok {
		t.Error("empty metadata should be omitted")
	}
	if _, ok := payload["created_at"]; ok {
		t.Error("zero created_at should be omitted")
	}
}

func TestPointToBinding(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	point := &qdrant.ScoredPoint{
		Id:    qdrant.NewID("00000000-0000-0000-0000-000000000001"),
		Score: 0.87,
		Payload: qdrant.NewValueMap(map[string]any{
			"from_id":      "u-1",
			"from_type":    "user",
			"to_id":        "g-1",
			"to_type":      "group",
			"binding_type": "member_of",
			"created_at":   created.Format(time.RFC3339Nano),
			"meta":         map[string]any{"role": "admin"},
		}),
	}

	b, err := pointToBinding(point)
	if err != nil {
		t.Fatal(err)
	}

	if b.ID != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("unexpected id: %q", b.ID)
	}
	if b.FromID != "u-1" || b.FromType != "user" || b.ToID != "g-1" || b.ToType != "group" {
		t.Errorf("unexpected endpoints: %+v", b)
	}
	if b.Type != "member_of" {
		t.Errorf("unexpected binding type: %q", b.Type)
	}
	if !b.CreatedAt.Equal(created) {
		t.Errorf("unexpected created_at: %v", b.CreatedAt)
	}
	if b.Metadata["role"] != "admin" {
		t.Errorf("unexpected metadata: %v", b.Metadata)
	}
	if b.Score != 0.87 {
		t.Errorf("unexpected score: %v", b.Score)
	}
}

func TestPointToBindingNilID(t *testing.T) {
	if _, err := pointToBinding(&qdrant.ScoredPoint{}); err == nil {
		t.Error("expected error for nil point ID")
	}
}
