// Package pager implements cursor-less pagination over the remote's
// query-based list operations: a bounded page iterator composed with a
// collect-all combinator, so the pagination primitive stays testable apart
// from the "fetch everything" policy.
package pager

import (
	"context"
	"errors"

	"github.com/jonesrussell/spacesync/internal/remote"
)

// OrderCreatedAt sorts by creation time ascending. The remote has no stable
// cursor, so a stable sort key is mandatory: without it, records created
// during a long fetch could be skipped or duplicated across page boundaries.
const OrderCreatedAt = "sys.createdAt"

// ListFunc is one remote list operation.
type ListFunc[T any] func(ctx context.Context, q remote.Query) (*remote.Page[T], error)

// Pager iterates a named collection one fixed-size page at a time.
type Pager[T any] struct {
	list     ListFunc[T]
	pageSize int
	skip     int
	done     bool
}

// New creates a Pager starting at skip 0.
func New[T any](list ListFunc[T], pageSize int) *Pager[T] {
	return &Pager[T]{list: list, pageSize: pageSize}
}

// More reports whether another page should be requested.
func (p *Pager[T]) More() bool {
	return !p.done
}

// Next fetches the next page and advances the iterator. The iterator is
// exhausted once skip+pageSize exceeds the total reported by the response;
// a short page alone does not terminate it, which matters when the
// collection size is an exact multiple of the page size. Remote errors are
// propagated untouched.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	page, err := p.list(ctx, remote.Query{
		Skip:  p.skip,
		Limit: p.pageSize,
		Order: OrderCreatedAt,
	})
	if err != nil {
		return nil, err
	}

	if p.skip+p.pageSize > page.Total {
		p.done = true
	}
	p.skip += p.pageSize

	return page.Items, nil
}

// CollectAll drains the collection into one slice, preserving remote order.
func CollectAll[T any](ctx context.Context, list ListFunc[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}

	p := New(list, pageSize)
	var all []T
	for p.More() {
		items, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}
