package sa

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Engine runs simulated annealing on one Problem. It owns its random source
// and scratch state, so an Engine must not be shared between goroutines; use
// one Engine per goroutine (see SolveMulti).
type Engine struct {
	p    Problem
	opts Options
	rng  Rand
	log  *slog.Logger
	cons *Constructor
}

// New validates p and opts and prepares an engine.
// Errors: ErrNilGraph, ErrNodeOutOfRange, ErrBadBudget and the option
// sentinels (ErrBadTemperature, ErrBadCoolingRate, ErrBadLimit, ErrBadPenalty).
func New(p Problem, opts Options) (*Engine, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rngFromSeed(opts.Seed)
	}
	lg := opts.Logger
	if lg == nil {
		lg = slog.New(slog.DiscardHandler)
	}
	cons, err := NewConstructor(p.Graph, p.Source, p.Target, rng)
	if err != nil {
		return nil, err
	}

	return &Engine{p: p, opts: opts, rng: rng, log: lg, cons: cons}, nil
}

// Solve is shorthand for New followed by Run.
func Solve(ctx context.Context, p Problem, opts Options) (Result, error) {
	e, err := New(p, opts)
	if err != nil {
		return Result{}, err
	}

	return e.Run(ctx), nil
}

// Accept is the Metropolis criterion: improvements (delta<0) are always
// taken; otherwise the move is accepted iff exp(−delta/T) exceeds one
// rng.Float64() draw. No draw is consumed for improvements.
func Accept(delta, temperature float64, rng Rand) bool {
	if delta < 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}

	return math.Exp(-delta/temperature) > rng.Float64()
}

// Run anneals until a stop condition holds and returns the best solution.
//
// Loop: at each temperature perform Plateau moves (capped by MaxIterations);
// each move regrows a suffix of the current path and is accepted via Accept.
// best changes only to a candidate that reaches the target and is strictly
// fitter (or the first reaching one, whatever its fitness). Then
// T ← CoolingRate·T.
//
// Stop conditions, checked before each temperature step: T ≤ MinTemperature,
// MaxIterations moves performed, TimeLimit elapsed, ctx done.
//
// Run never fails: a target that cannot be reached leaves the degenerate
// [source] solution in Result.Best with ReachesTarget=false.
func (e *Engine) Run(ctx context.Context) Result {
	start := time.Now()
	var deadline time.Time
	if e.opts.TimeLimit > 0 {
		deadline = start.Add(e.opts.TimeLimit)
	}

	path, ok := e.cons.Construct(e.opts.ConstructAttempts)
	if !ok {
		e.log.Warn("no initial path reaches target",
			"source", e.p.Source, "target", e.p.Target, "attempts", e.opts.ConstructAttempts)
	}
	current := e.evaluate(path)
	best := current

	res := Result{Initial: current.Clone()}
	temp := e.opts.InitialTemperature

	for {
		if temp <= e.opts.MinTemperature {
			res.Stop = StopMinTemperature
			break
		}
		if res.Iterations >= e.opts.MaxIterations {
			res.Stop = StopMaxIterations
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			res.Stop = StopDeadline
			break
		}
		if ctx.Err() != nil {
			res.Stop = StopCancelled
			break
		}

		for k := 0; k < e.opts.Plateau && res.Iterations < e.opts.MaxIterations; k++ {
			next, reseeded := e.cons.Neighbor(current.Path, e.opts.ConstructAttempts)
			if reseeded {
				e.log.Debug("reseeding short path", "len", len(current.Path))
			}
			cand := e.evaluate(next)
			delta := cand.Fitness - current.Fitness

			accepted := Accept(delta, temp, e.rng)
			if accepted {
				res.Accepted++
				if delta > 0 {
					res.AcceptedWorse++
				}
				current = cand
				if improves(current, best) {
					best = current
					res.Improvements++
					e.log.Debug("new best",
						"iteration", res.Iterations, "cost", best.Cost,
						"resource", best.Resource, "fitness", best.Fitness)
				}
			}
			res.Iterations++

			if e.opts.Hook != nil {
				e.opts.Hook(Step{
					Iteration:   res.Iterations,
					Temperature: temp,
					Delta:       delta,
					Accepted:    accepted,
					Current:     current,
					Best:        best,
				})
			}
		}

		temp *= e.opts.CoolingRate
		res.TemperatureSteps++
	}

	res.Best = best.Clone()
	res.ResourceFeasible = res.Best.WithinBudget(e.p.Budget)
	res.FinalTemperature = temp
	res.Elapsed = time.Since(start)

	e.log.Info("annealing finished",
		"stop", string(res.Stop), "iterations", res.Iterations,
		"cost", res.Best.Cost, "resource", res.Best.Resource,
		"reaches_target", res.Best.ReachesTarget, "feasible", res.ResourceFeasible,
		"elapsed", res.Elapsed)

	return res
}

func (e *Engine) evaluate(path []int) Solution {
	return Evaluate(e.p.Graph, path, e.p.Target, e.p.Budget, e.opts.ResourcePenalty, e.opts.TargetPenalty)
}

// improves reports whether cand should replace best: only reaching solutions
// qualify, and a reaching cand always displaces a non-reaching best.
// Best fitness is therefore non-increasing only from the first reaching best
// onward; that first one may score above a degenerate initial solution.
func improves(cand, best Solution) bool {
	if !cand.ReachesTarget {
		return false
	}

	return !best.ReachesTarget || cand.Fitness < best.Fitness
}
