package analysis

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-relax/relax/curve"
)

// AnalyzeAll analyses every curve and returns the results sorted by
// temperature. Up to WithWorkers curves run concurrently. The only error is
// the context's.
func (a *Analyzer) AnalyzeAll(ctx context.Context, curves []curve.Raw, tg *float64) ([]Result, error) {
	results := make([]Result, len(curves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range curves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.Analyze(curves[i], tg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Temperature < results[j].Temperature
	})
	return results, nil
}
