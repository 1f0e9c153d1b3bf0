package query

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

var reportRules = append([]FieldRule{
	AnyOf("technology", "technology").AsRequired().WithMax(30).WithFanOut(),
	Match("geo", "geo").AsRequired(),
	Match("rank", "rank").AsRequired(),
	AnyOf("version", "version").WithDefault("ALL"),
}, DateRange("date")...)

func TestBuildQuery_EmptyParameters(t *testing.T) {
	spec := BuildQuery(ParameterSet{}, []FieldRule{Match("geo", "geo")})
	if len(spec.Clauses) != 0 {
		t.Errorf("expected no clauses, got %v", spec.Clauses)
	}
	if spec.Clauses == nil {
		t.Error("expected non-nil clause slice")
	}
}

func TestBuildQuery_FollowsRuleOrder(t *testing.T) {
	rules := []FieldRule{
		AnyOf("technology", "technology"),
		Match("geo", "geo"),
	}
	params := ParametersFromMap(map[string]string{"geo": "US", "technology": "react,vue"})

	spec := BuildQuery(params, rules)

	want := []FilterClause{
		{Field: "technology", Comparator: OneOf, Values: []string{"react", "vue"}},
		{Field: "geo", Comparator: Equal, Value: "US"},
	}
	if !reflect.DeepEqual(spec.Clauses, want) {
		t.Errorf("unexpected clauses\n got: %+v\nwant: %+v", spec.Clauses, want)
	}
}

func TestBuildQuery_IgnoresUnknownKeys(t *testing.T) {
	params := ParametersFromMap(map[string]string{"geo": "US", "utm_source": "newsletter"})
	spec := BuildQuery(params, []FieldRule{Match("geo", "geo")})

	if len(spec.Clauses) != 1 || spec.Clauses[0].Field != "geo" {
		t.Errorf("expected a single geo clause, got %+v", spec.Clauses)
	}
}

func TestBuildQuery_SkipsEmptyValues(t *testing.T) {
	params := ParametersFromMap(map[string]string{"geo": "", "technology": ",,"})
	spec := BuildQuery(params, []FieldRule{Match("geo", "geo"), AnyOf("technology", "technology")})

	if len(spec.Clauses) != 0 {
		t.Errorf("expected no clauses, got %+v", spec.Clauses)
	}
}

func TestBuildQuery_Defaults(t *testing.T) {
	spec := BuildQuery(ParameterSet{}, []FieldRule{AnyOf("version", "version").WithDefault("ALL")})

	clause, ok := spec.Clause("version")
	if !ok {
		t.Fatal("expected default version clause")
	}
	if clause.Comparator != OneOf || !reflect.DeepEqual(clause.Values, []string{"ALL"}) {
		t.Errorf("unexpected clause %+v", clause)
	}
}

func TestBuildQuery_DateRange(t *testing.T) {
	params := ParametersFromMap(map[string]string{"start": "2023-01-01", "end": "2023-06-01"})

	spec := BuildQuery(params, DateRange("date"))
	want := []FilterClause{
		{Field: "date", Comparator: GreaterOrEqual, Value: "2023-01-01"},
		{Field: "date", Comparator: LessOrEqual, Value: "2023-06-01"},
	}
	if !reflect.DeepEqual(spec.Clauses, want) {
		t.Errorf("unexpected clauses %+v", spec.Clauses)
	}

	exclusive := BuildQuery(params, DateRangeExclusive("date"))
	if exclusive.Clauses[1].Comparator != LessThan {
		t.Errorf("expected exclusive end, got %s", exclusive.Clauses[1].Comparator)
	}
}

func TestBuildQuery_ArrayContainsAny(t *testing.T) {
	params := ParametersFromMap(map[string]string{"category": "CMS,Blogs"})
	spec := BuildQuery(params, []FieldRule{ContainsAny("category", "category_obj")})

	want := FilterClause{Field: "category_obj", Comparator: ArrayContainsAny, Values: []string{"CMS", "Blogs"}}
	if !reflect.DeepEqual(spec.Clauses, []FilterClause{want}) {
		t.Errorf("unexpected clauses %+v", spec.Clauses)
	}
}

func TestBuildQuery_FanOutOnlyOnOneOf(t *testing.T) {
	rule := ContainsAny("category", "category_obj").WithFanOut()
	spec := BuildQuery(ParametersFromMap(map[string]string{"category": "CMS"}), []FieldRule{rule})

	if spec.Clauses[0].FanOut {
		t.Error("array-contains-any clause must not fan out")
	}
}

func TestBuildQuery_DeterministicAcrossArrivalOrder(t *testing.T) {
	first, err := url.ParseQuery("geo=US&technology=react,vue&rank=ALL&start=2023-01-01&end=2023-06-01")
	if err != nil {
		t.Fatal(err)
	}
	second, err := url.ParseQuery("end=2023-06-01&rank=ALL&start=2023-01-01&technology=react,vue&geo=US")
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(BuildQuery(NewParameterSet(first), reportRules))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(BuildQuery(NewParameterSet(second), reportRules))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Errorf("specs differ\n%s\n%s", a, b)
	}
}

type maxValueStore struct {
	max   any
	found bool
	err   error
	calls int
}

func (s *maxValueStore) Query(context.Context, QuerySpec) ([]Document, error) {
	return nil, nil
}

func (s *maxValueStore) MaxValue(_ context.Context, _, _ string) (any, bool, error) {
	s.calls++
	return s.max, s.found, s.err
}

func TestResolveLatest(t *testing.T) {
	store := &maxValueStore{max: "2024-05-01", found: true}
	params := ParametersFromMap(map[string]string{"start": "latest", "geo": "US"})

	resolved, err := ResolveLatest(context.Background(), store, "adoption", params, reportRules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("expected exactly one lookup, got %d", store.calls)
	}
	if got := resolved.Get("start"); got != "2024-05-01" {
		t.Errorf("expected resolved start, got %q", got)
	}
}

func TestResolveLatest_NoValueDropsParameter(t *testing.T) {
	store := &maxValueStore{}
	params := ParametersFromMap(map[string]string{"start": "latest"})

	resolved, err := ResolveLatest(context.Background(), store, "adoption", params, reportRules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Has("start") {
		t.Error("expected start to be dropped")
	}
	if _, ok := BuildQuery(resolved, DateRange("date")).Clause("date"); ok {
		t.Error("expected no date clause")
	}
}

func TestResolveLatest_SkipsConcreteValues(t *testing.T) {
	store := &maxValueStore{max: "2024-05-01", found: true}
	params := ParametersFromMap(map[string]string{"start": "2023-01-01", "end": "latest"})

	resolved, err := ResolveLatest(context.Background(), store, "adoption", params, reportRules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 0 {
		t.Errorf("expected no lookup, got %d", store.calls)
	}
	if resolved.Get("end") != "latest" {
		t.Error("end does not accept the latest sentinel")
	}
}

func TestResolveLatest_PropagatesError(t *testing.T) {
	boom := errors.New("deadline exceeded")
	store := &maxValueStore{err: boom}

	_, err := ResolveLatest(context.Background(), store, "adoption",
		ParametersFromMap(map[string]string{"start": "latest"}), reportRules)
	if !errors.Is(err, boom) || err != boom {
		t.Errorf("expected the storage error unchanged, got %v", err)
	}
}
