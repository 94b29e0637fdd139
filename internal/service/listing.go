package service

import (
	"context"

	"github.com/Payphone-Digital/jobboard/pkg/listing"
)

type lister[T any] interface {
	List(ctx context.Context, plan listing.Plan) (listing.Result[T], error)
}

// resolve builds a listing plan, reporting malformed input as a domain error.
func resolve(req listing.Request, opts listing.Options) (listing.Plan, error) {
	plan, err := listing.Resolve(req, opts)
	if err != nil {
		return listing.Plan{}, storeError(err, nil)
	}
	return plan, nil
}

func runList[T any](ctx context.Context, repo lister[T], plan listing.Plan) (listing.Result[T], error) {
	result, err := repo.List(ctx, plan)
	if err != nil {
		return listing.Result[T]{}, storeError(err, nil)
	}
	return result, nil
}

func list[T any](ctx context.Context, repo lister[T], req listing.Request, opts listing.Options) (listing.Result[T], error) {
	plan, err := resolve(req, opts)
	if err != nil {
		return listing.Result[T]{}, err
	}
	return runList[T](ctx, repo, plan)
}
