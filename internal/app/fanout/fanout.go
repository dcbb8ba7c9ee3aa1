// Package fanout applies one function to every item of a slice with a
// bounded number of goroutines. The browse service uses it for the
// per-category count queries.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one item: Value when Err is nil.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for each item with at most maxWorkers calls in flight
// (minimum 1) and returns the results in input order. Failures are recorded
// per item and never stop the rest.
//
// An item that has not started when ctx is done records ctx.Err() without
// calling fn. Calls already running are expected to watch ctx themselves.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))

	var g errgroup.Group
	g.SetLimit(max(maxWorkers, 1))
	for i := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fn(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}
