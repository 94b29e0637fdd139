package listing

import (
	"context"
	"errors"
	"fmt"
)

// Request is what the transport hands the resolver.
type Request struct {
	RawQuery string
	Current  any
	PageSize any
}

// Options are supplied by each call site.
type Options struct {
	Schema *Schema
	// Base is ANDed with whatever the caller asks for, e.g. {"isActive": true}.
	Base  Filter
	Actor *ActorScope
	Scope ScopePolicy
	// DefaultSort applies when the request carries no usable sort.
	DefaultSort       string
	DefaultPopulation []Directive
}

// Plan is a fully resolved listing request.
type Plan struct {
	Filter     Filter
	Sort       []SortField
	Population []Directive
	Projection Projection
	// Omit names storage columns never loaded, whatever the projection says.
	Omit       []string
	Page       Page
}

func (p Plan) Offset() int { return p.Page.Offset() }
func (p Plan) Limit() int  { return p.Page.PageSize }

// Store is the read side of a collection.
type Store[T any] interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, plan Plan) ([]T, error)
}

type Result[T any] struct {
	Meta   Meta `json:"meta"`
	Result []T  `json:"result"`
}

// Resolve turns a request into a plan. The actor scope is applied last as a
// separate clause, so nothing in RawQuery can widen it.
func Resolve(req Request, opts Options) (Plan, error) {
	q, err := ParseQuery(req.RawQuery, opts.Schema)
	if err != nil {
		return Plan{}, err
	}

	filter := And(opts.Base, q.Filter)
	if opts.Scope != nil {
		filter = And(filter, opts.Scope(opts.Actor))
	}

	sort := q.Sort
	if len(sort) == 0 && opts.DefaultSort != "" {
		sort = ParseSort(opts.DefaultSort, opts.Schema)
	}

	population := q.Population
	if len(population) == 0 {
		population = opts.DefaultPopulation
	}

	return Plan{
		Filter:     filter,
		Sort:       sort,
		Population: population,
		Projection: q.Projection,
		Page:       NewPage(req.Current, req.PageSize),
	}, nil
}

// List runs plan against store: one count, then one find with the same
// filter when the page can hold anything.
func List[T any](ctx context.Context, store Store[T], plan Plan) (Result[T], error) {
	total, err := store.Count(ctx, plan.Filter)
	if err != nil {
		return Result[T]{}, storeError("count", err)
	}

	items := []T{}
	if total > 0 && int64(plan.Offset()) < total {
		found, err := store.Find(ctx, plan)
		if err != nil {
			return Result[T]{}, storeError("find", err)
		}
		if found != nil {
			items = found
		}
	}

	return Result[T]{
		Meta:   NewMeta(plan.Page, total),
		Result: items,
	}, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, op, err)
}
