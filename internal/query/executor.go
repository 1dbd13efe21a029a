package query

import (
	"context"
	"errors"
)

// Page is one page of results and the total number of matching items.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

// Store is the storage capability the executor needs.
type Store[T any] interface {
	// Count returns the number of items matching p, ignoring any paging.
	Count(ctx context.Context, p Predicate) (int64, error)
	// Find returns at most limit items matching p, ordered by sort, after
	// skipping the first skip items.
	Find(ctx context.Context, p Predicate, sort []SortKey, skip, limit int) ([]T, error)
}

// Executor runs validated listing requests against a Store.
type Executor[T any] struct {
	schema *Schema
	store  Store[T]
}

// NewExecutor creates an Executor for the entity described by schema.
func NewExecutor[T any](schema *Schema, store Store[T]) *Executor[T] {
	return &Executor[T]{schema: schema, store: store}
}

// Execute counts every item of owner matching v and fetches the requested page.
//
// The count and the fetch are two independent store calls using the same
// predicate; under concurrent writes they may disagree.
// Store errors are returned unchanged.
func (e *Executor[T]) Execute(ctx context.Context, owner any, v Validated) (*Page[T], error) {
	if v.pageNumber < 1 || v.pageSize < 1 {
		return nil, errors.New("query: request has not been validated")
	}

	pred := BuildPredicate(e.schema, owner, v)

	count, err := e.store.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	items, err := e.store.Find(ctx, pred, ResolveSort(e.schema, v), v.Skip(), v.pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return &Page[T]{Data: items, Count: count}, nil
}
