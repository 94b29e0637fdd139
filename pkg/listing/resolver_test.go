package listing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"testing"

	"github.com/google/uuid"
)

type doc map[string]any

// memStore evaluates filter documents over flat in-memory documents.
type memStore struct {
	docs        []doc
	countFilter Filter
	findPlan    *Plan
	finds       int
	err         error
}

func (s *memStore) Count(_ context.Context, filter Filter) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.countFilter = filter
	var n int64
	for _, d := range s.docs {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) Find(_ context.Context, plan Plan) ([]doc, error) {
	s.finds++
	s.findPlan = &plan
	var out []doc
	skipped := 0
	for _, d := range s.docs {
		if !matches(d, plan.Filter) {
			continue
		}
		if skipped < plan.Offset() {
			skipped++
			continue
		}
		if len(out) == plan.Limit() {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

func matches(d doc, f Filter) bool {
	for key, cond := range f {
		switch key {
		case OpAnd:
			for _, sub := range cond.([]Filter) {
				if !matches(d, sub) {
					return false
				}
			}
		case OpOr:
			hit := false
			for _, sub := range cond.([]Filter) {
				if matches(d, sub) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		default:
			if !matchField(d, key, cond) {
				return false
			}
		}
	}
	return true
}

func matchField(d doc, key string, cond any) bool {
	value, present := d[key]
	ops, isOp := cond.(Op)
	if !isOp {
		return present && same(value, cond)
	}
	for op, operand := range ops {
		switch op {
		case OpEq:
			if !present || !same(value, operand) {
				return false
			}
		case OpNe:
			if present && same(value, operand) {
				return false
			}
		case OpIn, OpNin:
			found := false
			for _, v := range operand.([]any) {
				if present && same(value, v) {
					found = true
				}
			}
			if found != (op == OpIn) {
				return false
			}
		case OpGt, OpGte, OpLt, OpLte:
			a, _ := strconv.ParseFloat(fmt.Sprint(value), 64)
			b, _ := strconv.ParseFloat(fmt.Sprint(operand), 64)
			ok := map[string]bool{OpGt: a > b, OpGte: a >= b, OpLt: a < b, OpLte: a <= b}[op]
			if !present || !ok {
				return false
			}
		case OpRegex:
			prefix := ""
			if ops[OpOptions] == "i" {
				prefix = "(?i)"
			}
			if !present || !regexp.MustCompile(prefix+operand.(string)).MatchString(fmt.Sprint(value)) {
				return false
			}
		case OpExists:
			if present != operand.(bool) {
				return false
			}
		}
	}
	return true
}

func same(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func jobs(n int, location string, createdBy uuid.UUID) []doc {
	out := make([]doc, n)
	for i := range out {
		out[i] = doc{
			"_id":           uuid.NewString(),
			"name":          fmt.Sprintf("%s job %d", location, i),
			"location":      location,
			"isActive":      true,
			"createdBy._id": createdBy.String(),
		}
	}
	return out
}

func TestListPaginatesMatchingDocuments(t *testing.T) {
	owner := uuid.New()
	store := &memStore{docs: append(jobs(12, "Hanoi", owner), jobs(4, "HCM", owner)...)}

	req := Request{RawQuery: "location=Hanoi&current=2&pageSize=5", Current: "2", PageSize: "5"}
	plan, err := Resolve(req, Options{Schema: testJobSchema})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	res, err := List[doc](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := Meta{Current: 2, PageSize: 5, Pages: 3, Total: 12}
	if res.Meta != want {
		t.Errorf("Expected meta %+v, got %+v", want, res.Meta)
	}
	if len(res.Result) != 5 {
		t.Fatalf("Expected 5 results, got %d", len(res.Result))
	}
	for _, d := range res.Result {
		if d["location"] != "Hanoi" {
			t.Errorf("Expected only Hanoi jobs, got %v", d["location"])
		}
	}
	if !reflect.DeepEqual(store.countFilter, store.findPlan.Filter) {
		t.Errorf("Count and find used different filters: %v vs %v", store.countFilter, store.findPlan.Filter)
	}
}

func TestResolveFallsBackOnBadPagination(t *testing.T) {
	plan, err := Resolve(Request{Current: "abc", PageSize: "-1"}, Options{Schema: testJobSchema})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if plan.Page.Current != 1 || plan.Page.PageSize != DefaultPageSize {
		t.Errorf("Expected page 1/%d, got %+v", DefaultPageSize, plan.Page)
	}
	if plan.Offset() != 0 {
		t.Errorf("Expected offset 0, got %d", plan.Offset())
	}
}

func TestResolveRejectsMalformedIdentifier(t *testing.T) {
	_, err := Resolve(Request{RawQuery: "companyId=not-an-id"}, Options{Schema: testJobSchema})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestResolveEmptyValueIsAbsent(t *testing.T) {
	owner := uuid.New()
	store := &memStore{docs: append(jobs(3, "Hanoi", owner), jobs(2, "HCM", owner)...)}

	plan, err := Resolve(Request{RawQuery: "location="}, Options{Schema: testJobSchema, Base: Eq("isActive", true)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res, err := List[doc](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Meta.Total != 5 {
		t.Errorf("Expected all 5 active jobs, got %d", res.Meta.Total)
	}
}

func TestResolveHRScopeCannotBeOverridden(t *testing.T) {
	hr := uuid.New()
	other := uuid.New()
	store := &memStore{docs: append(jobs(3, "Hanoi", hr), jobs(6, "Hanoi", other)...)}
	actor := &ActorScope{ActorID: hr, Role: RoleHR}

	queries := []string{
		"",
		"createdBy._id=" + other.String(),
		"createdBy._id!=" + hr.String(),
		"filter=" + url.QueryEscape(fmt.Sprintf(`{"$or":[{"createdBy._id":%q},{"location":"Hanoi"}]}`, other)),
	}

	for _, raw := range queries {
		plan, err := Resolve(Request{RawQuery: raw, PageSize: 100}, Options{
			Schema: testJobSchema,
			Actor:  actor,
			Scope:  CreatorScope,
		})
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		res, err := List[doc](context.Background(), store, plan)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		for _, d := range res.Result {
			if d["createdBy._id"] != hr.String() {
				t.Errorf("%q: HR actor saw a job created by %v", raw, d["createdBy._id"])
			}
		}
		if res.Meta.Total > 3 {
			t.Errorf("%q: expected at most 3 jobs, got %d", raw, res.Meta.Total)
		}
	}
}

func TestResolveNonHRSeesEverything(t *testing.T) {
	store := &memStore{docs: append(jobs(3, "Hanoi", uuid.New()), jobs(6, "Hanoi", uuid.New())...)}
	actor := &ActorScope{ActorID: uuid.New(), Role: "ADMIN"}

	plan, _ := Resolve(Request{}, Options{Schema: testJobSchema, Actor: actor, Scope: CreatorScope})
	res, err := List[doc](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Meta.Total != 9 {
		t.Errorf("Expected 9 jobs, got %d", res.Meta.Total)
	}
}

func TestFreeTextSearchIsLiteral(t *testing.T) {
	store := &memStore{docs: []doc{
		{"name": "Senior C++ Developer"},
		{"name": "C Developer"},
		{"name": "CCC Developer"},
		{"name": "xa.b*cx"},
		{"name": "aXbbbc"},
	}}

	tests := []struct {
		text string
		want int64
	}{
		{"c++", 1},
		{"a.b*c", 1},
		{"developer", 3},
		{"(unclosed", 0},
	}

	for _, tt := range tests {
		plan, err := Resolve(Request{}, Options{Schema: testJobSchema, Base: Contains("name", tt.text)})
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.text, err)
		}
		res, err := List[doc](context.Background(), store, plan)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.text, err)
		}
		if res.Meta.Total != tt.want {
			t.Errorf("%q: expected %d matches, got %d", tt.text, tt.want, res.Meta.Total)
		}
	}
}

func TestListEmptyResult(t *testing.T) {
	store := &memStore{}
	plan, _ := Resolve(Request{}, Options{Schema: testJobSchema})

	res, err := List[doc](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Meta.Pages != 0 || res.Meta.Total != 0 {
		t.Errorf("Expected empty meta, got %+v", res.Meta)
	}
	if res.Result == nil || len(res.Result) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", res.Result)
	}
	if store.finds != 0 {
		t.Errorf("Expected no find on an empty count, got %d", store.finds)
	}
}

func TestListPageBeyondRange(t *testing.T) {
	store := &memStore{docs: jobs(3, "Hanoi", uuid.New())}
	plan, _ := Resolve(Request{Current: 5, PageSize: 2}, Options{Schema: testJobSchema})

	res, err := List[doc](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Meta.Current != 5 || res.Meta.Pages != 2 || len(res.Result) != 0 {
		t.Errorf("Expected empty page 5 of 2, got %+v with %d items", res.Meta, len(res.Result))
	}
	if store.finds != 0 {
		t.Errorf("Expected no find beyond the last page, got %d", store.finds)
	}
}

func TestListWrapsStoreErrors(t *testing.T) {
	down := errors.New("connection refused")
	plan, _ := Resolve(Request{}, Options{Schema: testJobSchema})

	_, err := List[doc](context.Background(), &memStore{err: down}, plan)
	if !errors.Is(err, ErrDependencyFailure) {
		t.Errorf("Expected ErrDependencyFailure, got %v", err)
	}
	if !errors.Is(err, down) {
		t.Errorf("Expected the store error to stay in the chain, got %v", err)
	}

	bad := fmt.Errorf("%w: bad id", ErrInvalidArgument)
	_, err = List[doc](context.Background(), &memStore{err: bad}, plan)
	if !errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrDependencyFailure) {
		t.Errorf("Expected invalid argument to pass through, got %v", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	defaults := []Directive{Populate("company", "_id", "name")}
	opts := Options{Schema: testJobSchema, DefaultSort: "-createdAt", DefaultPopulation: defaults}

	plan, err := Resolve(Request{}, opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(plan.Sort, []SortField{{Field: "createdAt", Desc: true}}) {
		t.Errorf("Expected default sort, got %v", plan.Sort)
	}
	if !reflect.DeepEqual(plan.Population, defaults) {
		t.Errorf("Expected default population, got %v", plan.Population)
	}

	plan, err = Resolve(Request{RawQuery: "sort=name&populate=company"}, opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(plan.Sort, []SortField{{Field: "name"}}) {
		t.Errorf("Expected caller sort, got %v", plan.Sort)
	}
	if !reflect.DeepEqual(plan.Population, []Directive{{Path: "company"}}) {
		t.Errorf("Expected caller population, got %v", plan.Population)
	}
}
