package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/rcsp/dijkstra"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/sa"
)

// DefaultRuns is the number of seeded solves per instance.
const DefaultRuns = 5

// ErrNoInstances indicates Run was called with an empty instance list.
var ErrNoInstances = errors.New("bench: no instances")

// Status classifies an instance outcome.
type Status string

const (
	// StatusOptimal: feasible and equal to the unconstrained lower bound.
	StatusOptimal Status = "optimal"
	// StatusFeasible: reaches the target within budget.
	StatusFeasible Status = "feasible"
	// StatusOverBudget: reaches the target but exceeds the budget although a
	// feasible path exists.
	StatusOverBudget Status = "over_budget"
	// StatusNoPath: a path to the target exists but the solver never found one.
	StatusNoPath Status = "no_path"
	// StatusInfeasible: no path fits the budget (certified by bounds).
	StatusInfeasible Status = "infeasible"
	// StatusUnreachable: the target is unreachable from the source.
	StatusUnreachable Status = "unreachable"
)

// Options configures a benchmark.
type Options struct {
	// Runs is the number of seeded solves per instance (≤0 ⇒ DefaultRuns).
	Runs int
	// Seed is the base seed; run r uses sa.DeriveSeed(Seed, r).
	Seed int64
	// Workers bounds concurrent solves (≤0 ⇒ GOMAXPROCS).
	Workers int
	// Solver is the base configuration; Seed, Rand and Hook are overridden.
	Solver sa.Options
	// Logger receives per-instance progress; nil discards.
	Logger *slog.Logger
}

// Row aggregates the runs of one instance.
type Row struct {
	Instance string  `json:"instance"`
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Budget   float64 `json:"budget"`

	InitialCost  float64 `json:"initial_cost"`
	BestCost     float64 `json:"best_cost"`
	BestResource float64 `json:"best_resource"`
	BestPath     []int   `json:"best_path"`
	MeanCost     float64 `json:"mean_cost"`
	StdDevCost   float64 `json:"stddev_cost"`

	// GapInitial is the cost reduction relative to the initial path, in %.
	GapInitial float64 `json:"gap_initial_pct"`
	// LowerBound is the unconstrained cheapest cost (0 when unreachable).
	LowerBound float64 `json:"lower_bound"`
	// GapLowerBound is (best − lower)/lower in %.
	GapLowerBound float64 `json:"gap_lower_bound_pct"`

	FeasibleRuns int     `json:"feasible_runs"`
	Runs         int     `json:"runs"`
	Iterations   int     `json:"mean_iterations"`
	ElapsedMS    float64 `json:"mean_elapsed_ms"`
	Status       Status  `json:"status"`
}

// Report is the outcome of one benchmark invocation.
type Report struct {
	ID      uuid.UUID `json:"id"`
	Created time.Time `json:"created"`
	System  SysInfo   `json:"system"`
	Runs    int       `json:"runs_per_instance"`
	Seed    int64     `json:"seed"`
	Rows    []Row     `json:"rows"`
}

// Run benchmarks every instance. It returns ctx.Err() if the context is
// cancelled before all solves finish.
func Run(ctx context.Context, instances []*instance.Instance, opts Options) (*Report, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}
	runs := opts.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	lg := opts.Logger
	if lg == nil {
		lg = slog.New(slog.DiscardHandler)
	}

	bounds := make([]dijkstra.Bounds, len(instances))
	for i, in := range instances {
		if in == nil || in.Graph == nil {
			return nil, fmt.Errorf("bench: instance %d: %w", i, instance.ErrNilInstance)
		}
		b, err := dijkstra.ComputeBounds(in.Graph, in.Source, in.Target, in.Budget)
		if err != nil {
			return nil, fmt.Errorf("bench: %s: %w", in.Name, err)
		}
		bounds[i] = b
	}

	results := make([][]sa.Result, len(instances))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range instances {
		results[i] = make([]sa.Result, runs)
		for r := 0; r < runs; r++ {
			o := opts.Solver
			o.Seed = sa.DeriveSeed(opts.Seed, uint64(r))
			o.Rand = nil
			o.Hook = nil
			o.Logger = lg.With("instance", in.Name, "run", r)
			g.Go(func() error {
				res, err := sa.Solve(gctx, in.Problem(), o)
				if err != nil {
					return fmt.Errorf("bench: %s run %d: %w", in.Name, r, err)
				}
				results[i][r] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{
		ID:      uuid.New(),
		Created: time.Now(),
		System:  CollectSysInfo(),
		Runs:    runs,
		Seed:    opts.Seed,
		Rows:    make([]Row, len(instances)),
	}
	for i, in := range instances {
		rep.Rows[i] = summarize(in, bounds[i], results[i])
		lg.Info("instance done",
			"instance", in.Name, "status", string(rep.Rows[i].Status),
			"best_cost", rep.Rows[i].BestCost, "gap_lb_pct", rep.Rows[i].GapLowerBound)
	}

	return rep, nil
}

// optimalTolerance absorbs float summation noise when comparing to the bound.
const optimalTolerance = 1e-9

func summarize(in *instance.Instance, b dijkstra.Bounds, rs []sa.Result) Row {
	row := Row{
		Instance:   in.Name,
		Nodes:      in.Graph.N(),
		Edges:      in.Graph.EdgeCount(),
		Budget:     in.Budget,
		LowerBound: b.MinCost,
		Runs:       len(rs),
	}

	best := 0
	costs := make([]float64, 0, len(rs))
	var iters int
	var elapsed time.Duration
	for k, r := range rs {
		if sa.Better(r.Best, rs[best].Best) {
			best = k
		}
		if r.Best.ReachesTarget {
			costs = append(costs, r.Best.Cost)
		}
		if r.ResourceFeasible {
			row.FeasibleRuns++
		}
		iters += r.Iterations
		elapsed += r.Elapsed
	}
	row.Iterations = iters / len(rs)
	row.ElapsedMS = float64(elapsed.Microseconds()) / 1000 / float64(len(rs))

	win := rs[best]
	row.InitialCost = win.Initial.Cost
	row.BestCost = win.Best.Cost
	row.BestResource = win.Best.Resource
	row.BestPath = win.Best.Path

	if len(costs) > 0 {
		row.MeanCost, row.StdDevCost = stat.MeanStdDev(costs, nil)
		if math.IsNaN(row.StdDevCost) {
			row.StdDevCost = 0
		}
	}
	if win.Initial.ReachesTarget && row.InitialCost > 0 {
		row.GapInitial = (row.InitialCost - row.BestCost) / row.InitialCost * 100
	}
	if b.Reachable && b.MinCost > 0 && win.Best.ReachesTarget {
		row.GapLowerBound = (row.BestCost - b.MinCost) / b.MinCost * 100
	}

	row.Status = Classify(win, b)

	return row
}

// Classify grades one solver result against the reference bounds of its
// instance.
func Classify(r sa.Result, b dijkstra.Bounds) Status {
	switch {
	case !b.Reachable:
		return StatusUnreachable
	case r.ResourceFeasible && r.Best.ReachesTarget && r.Best.Cost <= b.MinCost+optimalTolerance:
		return StatusOptimal
	case r.ResourceFeasible && r.Best.ReachesTarget:
		return StatusFeasible
	case !r.Best.ReachesTarget:
		return StatusNoPath
	case !b.Feasible:
		return StatusInfeasible
	default:
		return StatusOverBudget
	}
}
