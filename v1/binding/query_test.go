package binding

import (
	"context"
	"errors"
	"testing"
)

type testEntity struct {
	id  string
	typ string
}

func (e testEntity) GetID() string   { return e.id }
func (e testEntity) GetType() string { return e.typ }

// duckEntity exposes accessor names without implementing Entity.
type duckEntity struct {
	id  string
	typ string
}

func (e duckEntity) ID() string   { return e.id }
func (e duckEntity) Type() string { return e.typ }

func TestQueryImmutability(t *testing.T) {
	base := NewQuery(nil, "bindings")

	derived := base.Type("member_of").Where("status", "active").Limit(10)

	bc := base.Criteria()
	if bc.BindingType != "" || len(bc.Conditions) != 0 || bc.Limit != nil {
		t.Errorf("base query was mutated by chained calls: %+v", bc)
	}

	dc := derived.Criteria()
	if dc.BindingType != "member_of" || len(dc.Conditions) != 1 || dc.Limit == nil || *dc.Limit != 10 {
		t.Errorf("derived query missing accumulated criteria: %+v", dc)
	}
}

func TestQueryForkedChainsAreIndependent(t *testing.T) {
	parent := NewQuery(nil, "bindings").Where("a", 1)

	left := parent.Where("b", 2)
	right := parent.Where("c", 3)

	lc := left.Criteria()
	rc := right.Criteria()
	if len(lc.Conditions) != 2 || lc.Conditions[1].Field != "b" {
		t.Errorf("left fork has wrong conditions: %+v", lc.Conditions)
	}
	if len(rc.Conditions) != 2 || rc.Conditions[1].Field != "c" {
		t.Errorf("right fork has wrong conditions: %+v", rc.Conditions)
	}
	if got := len(parent.Criteria().Conditions); got != 1 {
		t.Errorf("parent condition count changed after forking: %d", got)
	}
}

func TestWhereDefaultsToEquality(t *testing.T) {
	q := NewQuery(nil, "bindings").Where("status", "active")

	c := q.Criteria()
	if len(c.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(c.Conditions))
	}
	cond := c.Conditions[0]
	if cond.Operator != OpEqual || cond.Field != "status" || cond.Value != "active" {
		t.Errorf("unexpected condition: %+v", cond)
	}
}

func TestWhereConditionsPreserveOrder(t *testing.T) {
	q := NewQuery(nil, "bindings").
		Where("a", 1).
		WhereOp("b", OpGreaterThan, 2).
		WhereIn("c", []any{"x", "y"}).
		WhereBetween("d", 1, 5).
		WhereExists("e").
		WhereNull("f")

	c := q.Criteria()
	want := []struct {
		field string
		op    Operator
	}{
		{"a", OpEqual},
		{"b", OpGreaterThan},
		{"c", OpIn},
		{"d", OpBetween},
		{"e", OpExists},
		{"f", OpIsNull},
	}
	if len(c.Conditions) != len(want) {
		t.Fatalf("expected %d conditions, got %d", len(want), len(c.Conditions))
	}
	for i, w := range want {
		if c.Conditions[i].Field != w.field || c.Conditions[i].Operator != w.op {
			t.Errorf("condition %d: got {%s %s}, want {%s %s}",
				i, c.Conditions[i].Field, c.Conditions[i].Operator, w.field, w.op)
		}
	}
}

func TestWhereBetweenValue(t *testing.T) {
	q := NewQuery(nil, "bindings").WhereBetween("score", 10, 20)

	c := q.Criteria()
	r, ok := c.Conditions[0].Value.(Range)
	if !ok {
		t.Fatalf("BETWEEN value is %T, want Range", c.Conditions[0].Value)
	}
	if r.Min != 10 || r.Max != 20 {
		t.Errorf("unexpected range: %+v", r)
	}
}

func TestWhereInCopiesValues(t *testing.T) {
	values := []any{"x", "y"}
	q := NewQuery(nil, "bindings").WhereIn("tag", values)

	values[0] = "mutated"

	got := q.Criteria().Conditions[0].Value.([]any)
	if got[0] != "x" {
		t.Errorf("condition saw caller-side mutation: %v", got)
	}
}

func TestFromWithEntity(t *testing.T) {
	q, err := NewQuery(nil, "bindings").From(testEntity{id: "u-1", typ: "user"})
	if err != nil {
		t.Fatal(err)
	}
	c := q.Criteria()
	if c.FromID != "u-1" || c.FromType != "user" {
		t.Errorf("unexpected from filter: %+v", c)
	}
}

func TestFromWithAccessorObject(t *testing.T) {
	q, err := NewQuery(nil, "bindings").From(duckEntity{id: "d-1", typ: "doc"})
	if err != nil {
		t.Fatal(err)
	}
	c := q.Criteria()
	if c.FromID != "d-1" || c.FromType != "doc" {
		t.Errorf("unexpected from filter: %+v", c)
	}
}

func TestFromWithTypeNameAndID(t *testing.T) {
	q, err := NewQuery(nil, "bindings").From("user", "u-2")
	if err != nil {
		t.Fatal(err)
	}
	c := q.Criteria()
	if c.FromID != "u-2" || c.FromType != "user" {
		t.Errorf("unexpected from filter: %+v", c)
	}
}

func TestFromInvalidArguments(t *testing.T) {
	base := NewQuery(nil, "bindings")

	cases := []struct {
		name string
		v    any
		id   []string
	}{
		{"string without id", "user", nil},
		{"string with empty id", "user", []string{""}},
		{"empty string", "", []string{"u-1"}},
		{"nil", nil, nil},
		{"plain struct", struct{ Name string }{"x"}, nil},
		{"int", 42, nil},
	}

	for _, tc := range cases {
		_, err := base.From(tc.v, tc.id...)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: got %v, want ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestToSetsTargetFilter(t *testing.T) {
	q, err := NewQuery(nil, "bindings").To(testEntity{id: "g-1", typ: "group"})
	if err != nil {
		t.Fatal(err)
	}
	c := q.Criteria()
	if c.ToID != "g-1" || c.ToType != "group" {
		t.Errorf("unexpected to filter: %+v", c)
	}
	if c.FromID != "" || c.FromType != "" {
		t.Errorf("to filter leaked into from filter: %+v", c)
	}
}

func TestTypeAndOrderByReplace(t *testing.T) {
	q := NewQuery(nil, "bindings").
		Type("first").Type("second").
		OrderBy("a").OrderBy("b", "DESC")

	c := q.Criteria()
	if c.BindingType != "second" {
		t.Errorf("binding type not replaced: %q", c.BindingType)
	}
	if c.Sort == nil || c.Sort.Field != "b" || c.Sort.Direction != "desc" {
		t.Errorf("sort not replaced or direction not lowercased: %+v", c.Sort)
	}
}

func TestOrderByDefaultDirection(t *testing.T) {
	c := NewQuery(nil, "bindings").OrderBy("created_at").Criteria()
	if c.Sort == nil || c.Sort.Direction != SortAsc {
		t.Errorf("expected default ascending sort, got %+v", c.Sort)
	}
}

func TestResetKeepsBindingAndExecutor(t *testing.T) {
	calls := 0
	exec := func(ctx context.Context, c Criteria) ([]Binding, error) {
		calls++
		if len(c.Conditions) != 0 || c.BindingType != "" {
			t.Errorf("reset query carried stale criteria: %+v", c)
		}
		if c.Collection != "bindings" {
			t.Errorf("reset query lost collection: %q", c.Collection)
		}
		return nil, nil
	}

	q := NewQuery("client-handle", "bindings").
		WithExecutor(exec).
		Type("member_of").
		Where("status", "active").
		Reset()

	if q.Client() != "client-handle" {
		t.Errorf("reset query lost client handle: %v", q.Client())
	}
	if _, err := q.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("executor called %d times, want 1", calls)
	}
}

func TestGetWithoutExecutor(t *testing.T) {
	_, err := NewQuery(nil, "bindings").Get(context.Background())
	if !errors.Is(err, ErrNoExecutor) {
		t.Errorf("got %v, want ErrNoExecutor", err)
	}
}

func TestGetInvokesExecutorWithSnapshot(t *testing.T) {
	fixed := []Binding{
		{ID: "1", Type: "member_of"},
		{ID: "2", Type: "member_of"},
		{ID: "3", Type: "member_of"},
	}

	var seen Criteria
	exec := func(ctx context.Context, c Criteria) ([]Binding, error) {
		seen = c
		return fixed, nil
	}

	q := NewQuery(nil, "bindings").WithExecutor(exec)
	q, err := q.From("user", "u-1")
	if err != nil {
		t.Fatal(err)
	}
	res, err := q.Type("member_of").Where("status", "active").Limit(3).Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Count() != 3 {
		t.Errorf("result count %d, want 3", res.Count())
	}
	got := res.Bindings()
	for i := range fixed {
		if got[i].ID != fixed[i].ID {
			t.Errorf("record %d: got %q, want %q", i, got[i].ID, fixed[i].ID)
		}
	}

	if seen.Collection != "bindings" || seen.FromID != "u-1" || seen.FromType != "user" ||
		seen.BindingType != "member_of" || len(seen.Conditions) != 1 ||
		seen.Limit == nil || *seen.Limit != 3 {
		t.Errorf("executor saw wrong criteria: %+v", seen)
	}
}

func TestGetPropagatesExecutorErrorUnchanged(t *testing.T) {
	backendErr := errors.New("connection refused")
	q := NewQuery(nil, "bindings").WithExecutor(func(ctx context.Context, c Criteria) ([]Binding, error) {
		return nil, backendErr
	})

	_, err := q.Get(context.Background())
	if !errors.Is(err, backendErr) {
		t.Errorf("got %v, want the backend error", err)
	}
	if errors.Is(err, ErrUnsupported) || errors.Is(err, ErrNoExecutor) {
		t.Errorf("backend error was wrapped into a package sentinel: %v", err)
	}
}

func TestUnsupportedOperationsNeverReachExecutor(t *testing.T) {
	exec := func(ctx context.Context, c Criteria) ([]Binding, error) {
		t.Error("executor invoked by an unsupported operation")
		return nil, nil
	}
	q := NewQuery(nil, "bindings").WithExecutor(exec)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"orWhere", func() error { _, err := q.OrWhere(func(q *Query) *Query { return q }); return err }},
		{"first", func() error { _, err := q.First(ctx); return err }},
		{"count", func() error { _, err := q.Count(ctx); return err }},
		{"exists", func() error { _, err := q.Exists(ctx); return err }},
		{"nearText", func() error { _, err := q.NearText([]string{"concept"}); return err }},
		{"nearVector", func() error { _, err := q.NearVector([]float32{0.1, 0.2}, 0.8); return err }},
	}

	for _, c := range checks {
		err := c.call()
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: got %v, want ErrUnsupported", c.name, err)
		}
		var ue *UnsupportedError
		if !errors.As(err, &ue) || ue.Capability == "" {
			t.Errorf("%s: error does not name the missing capability: %v", c.name, err)
		}
	}
}

func TestCriteriaSnapshotIsDetached(t *testing.T) {
	q := NewQuery(nil, "bindings").Where("a", 1)

	snap := q.Criteria()
	snap.Conditions[0].Field = "mutated"
	snap.BindingType = "mutated"

	c := q.Criteria()
	if c.Conditions[0].Field != "a" || c.BindingType != "" {
		t.Errorf("snapshot mutation reached the query: %+v", c)
	}
}
