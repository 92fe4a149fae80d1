package discovery

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// gather runs fn for every index in [0, n) with at most limit goroutines and
// concatenates the results in index order. fn reports its own failures.
func gather[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) []T) []T {
	if n == 0 {
		return nil
	}

	slots := make([][]T, n)
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			slots[i] = fn(gctx, i)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	out := make([]T, 0, total)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
