package sa_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/rcsp/sa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProblemValidation(t *testing.T) {
	g := diamond(t)
	opt := sa.DefaultOptions()

	cases := []struct {
		name string
		p    sa.Problem
		want error
	}{
		{"nil graph", sa.Problem{Target: 3, Budget: 1}, sa.ErrNilGraph},
		{"source out of range", sa.Problem{Graph: g, Source: 4, Target: 3, Budget: 1}, sa.ErrNodeOutOfRange},
		{"target out of range", sa.Problem{Graph: g, Source: 0, Target: -1, Budget: 1}, sa.ErrNodeOutOfRange},
		{"negative budget", sa.Problem{Graph: g, Source: 0, Target: 3, Budget: -1}, sa.ErrBadBudget},
		{"nan budget", sa.Problem{Graph: g, Source: 0, Target: 3, Budget: math.NaN()}, sa.ErrBadBudget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sa.New(tc.p, opt)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNew_OptionsValidation(t *testing.T) {
	p := sa.Problem{Graph: diamond(t), Source: 0, Target: 3, Budget: 100}

	cases := []struct {
		name   string
		mutate func(*sa.Options)
		want   error
	}{
		{"zero min temperature", func(o *sa.Options) { o.MinTemperature = 0 }, sa.ErrBadTemperature},
		{"t0 below tmin", func(o *sa.Options) { o.InitialTemperature = 0.001 }, sa.ErrBadTemperature},
		{"cooling one", func(o *sa.Options) { o.CoolingRate = 1 }, sa.ErrBadCoolingRate},
		{"cooling zero", func(o *sa.Options) { o.CoolingRate = 0 }, sa.ErrBadCoolingRate},
		{"no iterations", func(o *sa.Options) { o.MaxIterations = 0 }, sa.ErrBadLimit},
		{"no plateau", func(o *sa.Options) { o.Plateau = 0 }, sa.ErrBadLimit},
		{"no attempts", func(o *sa.Options) { o.ConstructAttempts = -1 }, sa.ErrBadLimit},
		{"negative time limit", func(o *sa.Options) { o.TimeLimit = -time.Second }, sa.ErrBadLimit},
		{"negative penalty", func(o *sa.Options) { o.ResourcePenalty = -1 }, sa.ErrBadPenalty},
		{"infinite penalty", func(o *sa.Options) { o.TargetPenalty = math.Inf(1) }, sa.ErrBadPenalty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opt := sa.DefaultOptions()
			tc.mutate(&opt)
			_, err := sa.New(p, opt)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAccept_Metropolis(t *testing.T) {
	// exp(-5/10) ≈ 0.6065
	r := &scriptedRand{floats: []float64{0.5, 0.7}}
	assert.True(t, sa.Accept(5, 10, r))
	assert.False(t, sa.Accept(5, 10, r))
	assert.Equal(t, 2, r.calls)

	// Improvements never consume a draw.
	assert.True(t, sa.Accept(-1e-9, 10, r))
	assert.Equal(t, 2, r.calls)

	// Equal fitness is accepted unless the draw is 1-ε close.
	assert.True(t, sa.Accept(0, 1, &scriptedRand{floats: []float64{0.999}}))

	assert.False(t, sa.Accept(1, 0, r))
}

func TestRun_ScenarioCheapestPath(t *testing.T) {
	p := sa.Problem{Graph: diamond(t), Source: 0, Target: 3, Budget: 100}
	res, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, res.Best.Path)
	assert.Equal(t, 3.0, res.Best.Cost)
	assert.Equal(t, 3.0, res.Best.Resource)
	assert.True(t, res.Best.ReachesTarget)
	assert.True(t, res.ResourceFeasible)
}

func TestRun_ScenarioTightBudget(t *testing.T) {
	// The cheap chain needs resource 3 > 2; the shortcut fits the budget.
	p := sa.Problem{Graph: diamond(t), Source: 0, Target: 3, Budget: 2}
	res, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)

	require.True(t, res.Best.ReachesTarget)
	require.NoError(t, sa.ValidatePath(p.Graph, res.Best.Path, 0))
	assert.Equal(t, []int{0, 3}, res.Best.Path)
	assert.True(t, res.ResourceFeasible)
}

func TestRun_OnlyPathOverBudgetIsKept(t *testing.T) {
	p := sa.Problem{Graph: chainOnly(t), Source: 0, Target: 3, Budget: 2}
	res, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, res.Best.Path)
	assert.True(t, res.Best.ReachesTarget)
	assert.False(t, res.ResourceFeasible)
	assert.InDelta(t, 3+100*(3-2), res.Best.Fitness, 1e-9)
}

func TestRun_UnreachableTarget(t *testing.T) {
	g := mustGraph(t, 4, []arc{{0, 1, 1, 1}, {2, 3, 1, 1}})
	opt := quickOptions()
	opt.MaxIterations = 50
	opt.ConstructAttempts = 20

	res, err := sa.Solve(context.Background(), sa.Problem{Graph: g, Source: 0, Target: 3, Budget: 10}, opt)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Best.Path)
	assert.False(t, res.Best.ReachesTarget)
	assert.False(t, res.ResourceFeasible)
	assert.Equal(t, sa.DefaultTargetPenalty, res.Best.Fitness)
	assert.Equal(t, 50, res.Iterations)
}

func TestRun_BestIsMonotone(t *testing.T) {
	g := randomDAG(t, 80, 400, 5)
	opt := quickOptions()
	opt.MaxIterations = 5000

	var (
		steps    int
		seenBest bool
		last     = math.Inf(1)
	)
	opt.Hook = func(s sa.Step) {
		steps++
		require.NoError(t, sa.ValidatePath(g, s.Current.Path, 0))
		if seenBest {
			require.True(t, s.Best.ReachesTarget, "best never regresses to a non-reaching path")
		}
		if s.Best.ReachesTarget {
			seenBest = true
			require.LessOrEqual(t, s.Best.Fitness, last)
			last = s.Best.Fitness
		}
	}

	res, err := sa.Solve(context.Background(), sa.Problem{Graph: g, Source: 0, Target: 79, Budget: 400}, opt)
	require.NoError(t, err)
	assert.Equal(t, res.Iterations, steps)
	assert.True(t, res.Best.ReachesTarget)
	assert.LessOrEqual(t, res.Best.Fitness, res.Initial.Fitness)
	assert.Equal(t, last, res.Best.Fitness)
}

// TestRun_FirstReachingBestMayRaiseFitness pins where best monotonicity
// starts: a degenerate initial path carries only TargetPenalty, so the first
// reaching path may score worse and still becomes best.
func TestRun_FirstReachingBestMayRaiseFitness(t *testing.T) {
	// node 1 is a dead end listed first; the only route is 0→2→3 (cost 20)
	g := mustGraph(t, 4, []arc{{0, 1, 1, 1}, {0, 2, 10, 1}, {2, 3, 10, 1}})
	opt := quickOptions()
	opt.MaxIterations = 5
	opt.ConstructAttempts = 1
	opt.TargetPenalty = 1
	// initial walk takes the dead end, the first reseed takes 0→2→3
	opt.Rand = &pickRand{picks: []int{0, 1, 0}}

	var bests []float64
	opt.Hook = func(s sa.Step) {
		if s.Best.ReachesTarget {
			bests = append(bests, s.Best.Fitness)
		}
	}

	res, err := sa.Solve(context.Background(), sa.Problem{Graph: g, Source: 0, Target: 3, Budget: 10}, opt)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Initial.Path)
	assert.Equal(t, 1.0, res.Initial.Fitness)
	assert.Equal(t, []int{0, 2, 3}, res.Best.Path)
	assert.Equal(t, 20.0, res.Best.Fitness)
	assert.Greater(t, res.Best.Fitness, res.Initial.Fitness)

	require.NotEmpty(t, bests)
	for i := 1; i < len(bests); i++ {
		assert.LessOrEqual(t, bests[i], bests[i-1])
	}
}

func TestRun_Deterministic(t *testing.T) {
	g := randomDAG(t, 60, 300, 9)
	p := sa.Problem{Graph: g, Source: 0, Target: 59, Budget: 250}

	a, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)
	b, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Best, b.Best)
	assert.Equal(t, a.Initial, b.Initial)
	assert.Equal(t, a.Accepted, b.Accepted)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestRun_StopReasons(t *testing.T) {
	p := sa.Problem{Graph: diamond(t), Source: 0, Target: 3, Budget: 100}

	t.Run("max iterations", func(t *testing.T) {
		opt := quickOptions()
		opt.MaxIterations = 35
		opt.Plateau = 20
		res, err := sa.Solve(context.Background(), p, opt)
		require.NoError(t, err)
		assert.Equal(t, sa.StopMaxIterations, res.Stop)
		assert.Equal(t, 35, res.Iterations)
		assert.Equal(t, 2, res.TemperatureSteps)
	})

	t.Run("min temperature", func(t *testing.T) {
		opt := quickOptions()
		opt.InitialTemperature = 10
		opt.MinTemperature = 1
		opt.CoolingRate = 0.5
		res, err := sa.Solve(context.Background(), p, opt)
		require.NoError(t, err)
		assert.Equal(t, sa.StopMinTemperature, res.Stop)
		assert.Equal(t, 4, res.TemperatureSteps) // 10 → 5 → 2.5 → 1.25 → 0.625
		assert.Equal(t, 4*opt.Plateau, res.Iterations)
		assert.InDelta(t, 0.625, res.FinalTemperature, 1e-12)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := sa.Solve(ctx, p, quickOptions())
		require.NoError(t, err)
		assert.Equal(t, sa.StopCancelled, res.Stop)
		assert.Zero(t, res.Iterations)
		assert.Equal(t, res.Initial, res.Best)
	})

	t.Run("deadline", func(t *testing.T) {
		opt := quickOptions()
		opt.MaxIterations = math.MaxInt32
		opt.MinTemperature = 1e-300
		opt.CoolingRate = 0.999999
		opt.TimeLimit = 20 * time.Millisecond
		res, err := sa.Solve(context.Background(), p, opt)
		require.NoError(t, err)
		assert.Equal(t, sa.StopDeadline, res.Stop)
		assert.GreaterOrEqual(t, res.Elapsed, opt.TimeLimit)
	})
}

func TestRun_CountersConsistent(t *testing.T) {
	g := randomDAG(t, 40, 160, 13)
	res, err := sa.Solve(context.Background(), sa.Problem{Graph: g, Source: 0, Target: 39, Budget: 150}, quickOptions())
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Accepted, res.Iterations)
	assert.LessOrEqual(t, res.AcceptedWorse, res.Accepted)
	assert.LessOrEqual(t, res.Improvements, res.Accepted)
	assert.Equal(t, res.Best.WithinBudget(150), res.ResourceFeasible)
}

func TestRun_ExplicitRandOverridesSeed(t *testing.T) {
	g := randomDAG(t, 30, 120, 17)
	p := sa.Problem{Graph: g, Source: 0, Target: 29, Budget: 200}

	viaSeed, err := sa.Solve(context.Background(), p, quickOptions())
	require.NoError(t, err)

	opt := quickOptions()
	opt.Seed = 999 // ignored
	opt.Rand = sa.NewRand(seedDet)
	viaRand, err := sa.Solve(context.Background(), p, opt)
	require.NoError(t, err)

	assert.Equal(t, viaSeed.Best, viaRand.Best)
}
