package upstream

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Gather runs fetch for every index in [0, n) with at most limit calls in
// flight. A failed member is left out instead of failing the batch, so the
// result holds the successes in index order. The joined member errors are
// returned for logging; they never mean the batch as a whole failed.
func Gather[T any](ctx context.Context, limit, n int, fetch func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = n
	}

	results := make([]T, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i], errs[i] = fetch(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]T, 0, n)
	for i := range results {
		if errs[i] == nil {
			out = append(out, results[i])
		}
	}
	return out, errors.Join(errs...)
}
