package services

import (
	"context"
	"crew-route-service/internal/domain"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// OptimizeBatch computes independent routes, one per crew, with bounded concurrency.
// Results keep the order of reqs. The first failure cancels the remaining work.
func (o *Optimizer) OptimizeBatch(ctx context.Context, reqs []OptimizeRequest) ([]*domain.RouteResult, error) {
	results := make([]*domain.RouteResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.batchConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			route, err := o.Optimize(gctx, req)
			if err != nil {
				return fmt.Errorf("optimize batch: route %d: %w", i, err)
			}
			results[i] = route
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
