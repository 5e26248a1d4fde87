package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rewrite-engine/internal/types"
)

// RewriteBulletsParallel dispatches independent rewrite pipelines for each
// bullet through a bounded task pool and joins all results. Results preserve
// input order; there is no ordering guarantee between the concurrent
// pipelines themselves. Each pipeline builds its own ledger and plan, so no
// state is shared across tasks.
func (e *Engine) RewriteBulletsParallel(ctx context.Context, reqs []types.BulletRequest) ([]types.RewriteResult, error) {
	if len(reqs) == 0 {
		return []types.RewriteResult{}, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrent)

	results := make([]types.RewriteResult, len(reqs))
	for i := range reqs {
		i := i
		g.Go(func() error {
			result, err := e.RewriteBullet(gCtx, &reqs[i])
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
