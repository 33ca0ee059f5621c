package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/rcsp/graph"
)

// Shortest computes distances from src to every vertex of g under weight w.
//
// Returns:
//
//   - dist: dist[v] is the minimum distance, +Inf if v is unreachable (or
//     beyond MaxDistance).
//   - prev: prev[v] is the predecessor of v on one shortest path; -1 for src
//     and unreachable vertices. Rebuild paths with PathTo.
//
// Validation order: ErrNilGraph, ErrVertexNotFound, ErrBadMaxDistance,
// ErrBadInfThreshold.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) (lazy decrease-key may hold up to E heap entries)
func Shortest(g *graph.Graph, src int, w Weight, opts ...Option) ([]float64, []int, error) {
	r, err := newRunner(g, src, w, opts)
	if err != nil {
		return nil, nil, err
	}
	r.process()

	return r.dist, r.prev, nil
}

// PathTo rebuilds the path src→dst from a predecessor slice. It returns nil
// when dst is unreachable (or out of range).
func PathTo(prev []int, src, dst int) []int {
	if dst < 0 || dst >= len(prev) {
		return nil
	}
	if dst == src {
		return []int{src}
	}
	if prev[dst] < 0 {
		return nil
	}

	var rev []int
	for v := dst; v != src; v = prev[v] {
		if v < 0 || len(rev) > len(prev) {
			return nil
		}
		rev = append(rev, v)
	}
	rev = append(rev, src)

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *graph.Graph
	w       Weight
	options Options
	dist    []float64    // vertex → current best distance from src
	prev    []int        // vertex → predecessor on the shortest path
	via     []graph.Edge // vertex → arc used to reach it (parallel arcs differ)
	visited []bool       // distance finalised
	pq      nodePQ
}

func newRunner(g *graph.Graph, src int, w Weight, opts []Option) (*runner, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Contains(src) {
		return nil, fmt.Errorf("%w: %d (n=%d)", ErrVertexNotFound, src, g.N())
	}
	if !(cfg.MaxDistance >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadMaxDistance, cfg.MaxDistance)
	}
	if !(cfg.InfEdgeThreshold > 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadInfThreshold, cfg.InfEdgeThreshold)
	}

	n := g.N()
	r := &runner{
		g:       g,
		w:       w,
		options: cfg,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		via:     make([]graph.Edge, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	for v := 0; v < n; v++ {
		r.dist[v] = math.Inf(1)
		r.prev[v] = -1
	}
	r.dist[src] = 0
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0})

	return r, nil
}

// process repeatedly extracts the closest unfinished vertex and relaxes its
// out-arcs, until the heap is empty or the next distance exceeds MaxDistance.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// stale entry
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		r.relax(u)
	}
}

// relax improves neighbours of the finalised vertex u.
func (r *runner) relax(u int) {
	for _, e := range r.g.Neighbors(u) {
		wt := r.w.of(e)
		if wt >= r.options.InfEdgeThreshold {
			continue
		}

		nd := r.dist[u] + wt
		if nd > r.options.MaxDistance {
			continue
		}
		// strict: equal distances keep the first predecessor found
		if nd >= r.dist[e.To] {
			continue
		}

		r.dist[e.To] = nd
		r.prev[e.To] = u
		r.via[e.To] = e
		heap.Push(&r.pq, &nodeItem{id: e.To, dist: nd})
	}
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending. Outdated
// entries stay in the heap and are skipped when popped (visited check).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
