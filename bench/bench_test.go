package bench_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rcsp/bench"
	"github.com/katalvlaran/rcsp/dijkstra"
	"github.com/katalvlaran/rcsp/generator"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/sa"
)

func parse(t *testing.T, name, text string) *instance.Instance {
	t.Helper()
	in, err := instance.Read(strings.NewReader(text))
	require.NoError(t, err)
	in.Name = name

	return in
}

func quick() bench.Options {
	opt := sa.DefaultOptions()
	opt.MaxIterations = 300
	opt.ConstructAttempts = 10

	return bench.Options{Runs: 3, Seed: 5, Workers: 2, Solver: opt}
}

func TestRun_Statuses(t *testing.T) {
	const diamond = "0 1 1 1\n1 2 1 1\n2 3 1 1\n0 3 10 1\n"
	instances := []*instance.Instance{
		parse(t, "loose", "4 4 0 3 100\n"+diamond),
		parse(t, "tight", "4 4 0 3 2\n"+diamond),
		parse(t, "infeasible", "4 3 0 3 2\n0 1 1 1\n1 2 1 1\n2 3 1 1\n"),
		parse(t, "unreachable", "4 2 0 3 10\n0 1 1 1\n2 3 1 1\n"),
	}

	rep, err := bench.Run(context.Background(), instances, quick())
	require.NoError(t, err)
	require.Len(t, rep.Rows, 4)

	byName := map[string]bench.Row{}
	for _, r := range rep.Rows {
		byName[r.Instance] = r
	}

	loose := byName["loose"]
	assert.Equal(t, bench.StatusOptimal, loose.Status)
	assert.Equal(t, 3.0, loose.BestCost)
	assert.Equal(t, 3.0, loose.LowerBound)
	assert.Zero(t, loose.GapLowerBound)
	assert.Equal(t, 3, loose.FeasibleRuns)

	tight := byName["tight"]
	assert.Equal(t, bench.StatusFeasible, tight.Status)
	assert.Equal(t, 10.0, tight.BestCost)
	assert.InDelta(t, (10.0-3.0)/3.0*100, tight.GapLowerBound, 1e-9)

	assert.Equal(t, bench.StatusInfeasible, byName["infeasible"].Status)
	assert.Equal(t, bench.StatusUnreachable, byName["unreachable"].Status)
	assert.Zero(t, byName["unreachable"].FeasibleRuns)

	assert.NotEqual(t, [16]byte{}, [16]byte(rep.ID))
	assert.Equal(t, 3, rep.Runs)
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	ins, err := generator.Generate(generator.KindBackbone, generator.StandardSuite()[:2], 1)
	require.NoError(t, err)

	a := quick()
	a.Workers = 1
	b := quick()
	b.Workers = 4

	ra, err := bench.Run(context.Background(), ins, a)
	require.NoError(t, err)
	rb, err := bench.Run(context.Background(), ins, b)
	require.NoError(t, err)

	for i := range ra.Rows {
		assert.Equal(t, ra.Rows[i].BestCost, rb.Rows[i].BestCost)
		assert.Equal(t, ra.Rows[i].BestPath, rb.Rows[i].BestPath)
		assert.Equal(t, ra.Rows[i].MeanCost, rb.Rows[i].MeanCost)
	}
}

func TestRun_Errors(t *testing.T) {
	_, err := bench.Run(context.Background(), nil, quick())
	require.ErrorIs(t, err, bench.ErrNoInstances)

	_, err = bench.Run(context.Background(), []*instance.Instance{nil}, quick())
	require.ErrorIs(t, err, instance.ErrNilInstance)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := parse(t, "x", "2 1 0 1 5\n0 1 1 1\n")
	_, err = bench.Run(ctx, []*instance.Instance{in}, quick())
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_Writers(t *testing.T) {
	in := parse(t, "pair", "2 1 0 1 5\n0 1 2 1\n")
	rep, err := bench.Run(context.Background(), []*instance.Instance{in}, quick())
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, rep.WriteText(&text))
	out := text.String()
	assert.Contains(t, out, rep.ID.String())
	assert.Contains(t, out, "pair")
	assert.Contains(t, out, "optimal")
	assert.Contains(t, out, "ANALYSIS")
	assert.Contains(t, out, "Processed 1 instances; 1 within budget, 1 matching the lower bound.")

	var js bytes.Buffer
	require.NoError(t, rep.WriteJSON(&js))
	var back bench.Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, rep.ID, back.ID)
	require.Len(t, back.Rows, 1)
	assert.Equal(t, bench.StatusOptimal, back.Rows[0].Status)
	assert.Equal(t, []int{0, 1}, back.Rows[0].BestPath)
}

func TestCollectSysInfo(t *testing.T) {
	info := bench.CollectSysInfo()
	assert.NotEmpty(t, info.Platform)
	assert.Positive(t, info.Cores)
	assert.NotEmpty(t, info.Go)
}

func TestClassify(t *testing.T) {
	feasible := sa.Result{Best: sa.Solution{Cost: 5, ReachesTarget: true}, ResourceFeasible: true}
	over := sa.Result{Best: sa.Solution{Cost: 2, ReachesTarget: true}}
	bounds := dijkstra.Bounds{Reachable: true, MinCost: 2, Feasible: true}

	tests := []struct {
		name string
		r    sa.Result
		b    dijkstra.Bounds
		want bench.Status
	}{
		{"unreachable", sa.Result{}, dijkstra.Bounds{}, bench.StatusUnreachable},
		{"feasible", feasible, bounds, bench.StatusFeasible},
		{"optimal", sa.Result{Best: sa.Solution{Cost: 2, ReachesTarget: true}, ResourceFeasible: true}, bounds, bench.StatusOptimal},
		{"over budget", over, bounds, bench.StatusOverBudget},
		{"infeasible", over, dijkstra.Bounds{Reachable: true, MinCost: 2}, bench.StatusInfeasible},
		{"no path found", sa.Result{Best: sa.Solution{Path: []int{0}}}, bounds, bench.StatusNoPath},
		{"no path found, infeasible instance", sa.Result{Best: sa.Solution{Path: []int{0}}},
			dijkstra.Bounds{Reachable: true, MinCost: 2}, bench.StatusNoPath},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bench.Classify(tc.r, tc.b))
		})
	}
}

func TestAnalysis_CountsNoPath(t *testing.T) {
	rep := &bench.Report{Rows: []bench.Row{
		{Instance: "a", Nodes: 10, Status: bench.StatusFeasible},
		{Instance: "b", Nodes: 20, Status: bench.StatusNoPath},
	}}
	lines := rep.Analysis()
	assert.Contains(t, lines[0], "1 within budget")
	assert.Contains(t, strings.Join(lines, "\n"), "No path to the target was found in 1 reachable instances.")
	assert.Contains(t, lines[len(lines)-1], "Largest instance (b, 20 nodes)")
}
