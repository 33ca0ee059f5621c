package sa

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SolveMulti runs starts independent engines in parallel and returns the
// winner together with every per-start result (index = start number).
//
// A single start is exactly Solve. With more, start i draws from
// DeriveSeed(opts.Seed, i), so the outcome depends only on the seed and
// starts, not on scheduling. The winner is the result whose Best
// is preferred by Better; ties go to the lowest index. opts.Rand must be nil
// when starts > 1 (ErrSharedRand). Logger receives a "start" attribute.
func SolveMulti(ctx context.Context, p Problem, opts Options, starts int) (Result, []Result, error) {
	if starts < 1 {
		starts = 1
	}
	if opts.Rand != nil && starts > 1 {
		return Result{}, nil, ErrSharedRand
	}
	if starts == 1 {
		r, err := Solve(ctx, p, opts)
		if err != nil {
			return Result{}, nil, err
		}
		return r, []Result{r}, nil
	}

	engines := make([]*Engine, starts)
	for i := range engines {
		o := opts
		o.Rand = deriveRNG(opts.Seed, uint64(i))
		if opts.Logger != nil {
			o.Logger = opts.Logger.With("start", i)
		}
		e, err := New(p, o)
		if err != nil {
			return Result{}, nil, err
		}
		engines[i] = e
	}

	results := make([]Result, starts)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range engines {
		g.Go(func() error {
			results[i] = e.Run(gctx)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	win := 0
	for i := 1; i < starts; i++ {
		if Better(results[i].Best, results[win].Best) {
			win = i
		}
	}

	return results[win], results, nil
}

// Better reports whether a is strictly preferable to b: reaching the target
// beats not reaching it, then lower fitness wins.
func Better(a, b Solution) bool {
	if a.ReachesTarget != b.ReachesTarget {
		return a.ReachesTarget
	}

	return a.Fitness < b.Fitness
}
