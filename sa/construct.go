package sa

import (
	"fmt"

	"github.com/katalvlaran/rcsp/graph"
)

// Constructor builds random simple paths toward a fixed target.
//
// Walk: from the current node collect every out-arc whose head is not yet
// visited, pick one uniformly (parallel arcs weight the draw), mark it visited
// and continue until the target is reached or no candidate remains.
//
// The visited set is an epoch-stamped slice owned by the constructor, so a
// walk allocates nothing beyond its output path. A Constructor is not safe for
// concurrent use; it shares the graph read-only.
type Constructor struct {
	g      *graph.Graph
	source int
	target int
	rng    Rand

	mark  []uint32 // mark[u]==epoch ⇔ u visited in the current walk
	epoch uint32
	cand  []int // scratch: candidate heads
	buf   []int // scratch: path under construction
}

// NewConstructor returns a constructor for walks source→target on g.
func NewConstructor(g *graph.Graph, source, target int, rng Rand) (*Constructor, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Contains(source) || !g.Contains(target) {
		return nil, fmt.Errorf("%w: source=%d target=%d n=%d", ErrNodeOutOfRange, source, target, g.N())
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}

	return &Constructor{
		g:      g,
		source: source,
		target: target,
		rng:    rng,
		mark:   make([]uint32, g.N()),
	}, nil
}

// Construct attempts up to attempts full walks source→target and returns the
// first one that arrives. If all attempts get stuck it returns the degenerate
// path [source] and ok=false. attempts < 1 is treated as 1.
//
// Complexity: O(attempts · (n + m)) worst case.
func (c *Constructor) Construct(attempts int) (path []int, ok bool) {
	if attempts < 1 {
		attempts = 1
	}
	for a := 0; a < attempts; a++ {
		c.reset()
		c.visit(c.source)
		c.buf = append(c.buf[:0], c.source)
		if c.buf, ok = c.walk(c.buf); ok {
			return append([]int(nil), c.buf...), true
		}
	}

	return []int{c.source}, false
}

// Regrow extends a copy of prefix from its last node toward the target,
// never revisiting any prefix node. Single attempt: a stuck walk returns the
// prefix plus whatever was grown. prefix must be non-empty.
func (c *Constructor) Regrow(prefix []int) []int {
	c.reset()
	for _, u := range prefix {
		c.visit(u)
	}
	out := make([]int, len(prefix), len(prefix)+8)
	copy(out, prefix)
	out, _ = c.walk(out)

	return out
}

// walk grows path (whose nodes are already marked) until it reaches the
// target or gets stuck. Bounded by n steps.
func (c *Constructor) walk(path []int) ([]int, bool) {
	cur := path[len(path)-1]
	for steps, n := 0, c.g.N(); cur != c.target && steps < n; steps++ {
		c.cand = c.cand[:0]
		for _, e := range c.g.Neighbors(cur) {
			if !c.visited(e.To) {
				c.cand = append(c.cand, e.To)
			}
		}
		if len(c.cand) == 0 {
			return path, false
		}
		cur = c.cand[c.rng.Intn(len(c.cand))]
		c.visit(cur)
		path = append(path, cur)
	}

	return path, cur == c.target
}

// reset starts a fresh visited set in O(1); the marks are only cleared when
// the epoch counter wraps.
func (c *Constructor) reset() {
	c.epoch++
	if c.epoch == 0 {
		clear(c.mark)
		c.epoch = 1
	}
}

func (c *Constructor) visit(u int)        { c.mark[u] = c.epoch }
func (c *Constructor) visited(u int) bool { return c.mark[u] == c.epoch }
