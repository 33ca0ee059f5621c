// Package sa_test exercises the annealing solver through its public API.
package sa_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/rcsp/graph"
	"github.com/katalvlaran/rcsp/sa"
	"github.com/stretchr/testify/require"
)

const seedDet int64 = 42

type arc struct {
	u, v     int
	cost     float64
	resource float64
}

func mustGraph(t testing.TB, n int, arcs []arc) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	require.NoError(t, err)
	for _, a := range arcs {
		require.NoError(t, g.AddEdge(a.u, a.v, a.cost, a.resource))
	}

	return g
}

// diamond: cheap three-hop chain 0→1→2→3 versus expensive shortcut 0→3.
func diamond(t testing.TB) *graph.Graph {
	return mustGraph(t, 4, []arc{
		{0, 1, 1, 1},
		{1, 2, 1, 1},
		{2, 3, 1, 1},
		{0, 3, 10, 1},
	})
}

// chainOnly: the single path 0→1→2→3, cost 3, resource 3.
func chainOnly(t testing.TB) *graph.Graph {
	return mustGraph(t, 4, []arc{
		{0, 1, 1, 1},
		{1, 2, 1, 1},
		{2, 3, 1, 1},
	})
}

// randomDAG builds a reproducible instance with a guaranteed chain 0→…→n−1
// plus forward and backward noise arcs.
func randomDAG(t testing.TB, n, extra int, seed int64) *graph.Graph {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	arcs := make([]arc, 0, n-1+extra)
	for i := 0; i+1 < n; i++ {
		arcs = append(arcs, arc{i, i + 1, 1 + 20*r.Float64(), 1 + 10*r.Float64()})
	}
	for len(arcs) < n-1+extra {
		u, v := r.Intn(n), r.Intn(n)
		if u == v {
			continue
		}
		arcs = append(arcs, arc{u, v, 1 + 20*r.Float64(), 1 + 10*r.Float64()})
	}

	return mustGraph(t, n, arcs)
}

// quickOptions keeps runs short for unit tests.
func quickOptions() sa.Options {
	opt := sa.DefaultOptions()
	opt.Seed = seedDet
	opt.MaxIterations = 2000

	return opt
}

// scriptedRand replays fixed Float64 draws and counts consumption.
type scriptedRand struct {
	floats []float64
	calls  int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[s.calls%len(s.floats)]
	s.calls++

	return v
}

func (s *scriptedRand) Intn(n int) int { return 0 }

// pickRand replays fixed Intn picks (0 once exhausted) and never rejects a
// move: Float64 is always 0.
type pickRand struct {
	picks []int
	pos   int
}

func (p *pickRand) Float64() float64 { return 0 }

func (p *pickRand) Intn(n int) int {
	if p.pos >= len(p.picks) {
		return 0
	}
	v := p.picks[p.pos] % n
	p.pos++

	return v
}
