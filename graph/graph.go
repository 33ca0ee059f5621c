package graph

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by graph construction.
var (
	// ErrTooFewNodes indicates New was called with n < 1.
	ErrTooFewNodes = errors.New("graph: node count must be positive")

	// ErrOutOfRange indicates an edge endpoint outside [0, n).
	ErrOutOfRange = errors.New("graph: node index out of range")

	// ErrNegativeWeight indicates a negative cost or resource on an edge.
	ErrNegativeWeight = errors.New("graph: negative edge weight")

	// ErrBadWeight indicates a NaN or infinite cost or resource on an edge.
	ErrBadWeight = errors.New("graph: edge weight is NaN or infinite")
)

// Edge is an outgoing arc stored in its source node's adjacency slice.
type Edge struct {
	// To is the head node of the arc.
	To int `json:"to"`

	// Cost is the additive weight minimised by the solvers.
	Cost float64 `json:"cost"`

	// Resource is the additive weight bounded by the budget.
	Resource float64 `json:"resource"`
}

// Graph is a directed multigraph over nodes 0..n-1 with two weights per edge.
type Graph struct {
	adj   [][]Edge
	edges int
}

// New allocates a graph with n nodes and no edges.
func New(n int) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrTooFewNodes, n)
	}

	return &Graph{adj: make([][]Edge, n)}, nil
}

// AddEdge appends the arc u→v to u's adjacency slice.
//
// Endpoints are never clamped: an index outside [0, n) yields ErrOutOfRange
// wrapped with the offending values. Parallel edges are accepted.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int, cost, resource float64) error {
	n := len(g.adj)
	if u < 0 || u >= n || v < 0 || v >= n {
		return fmt.Errorf("%w: edge %d→%d with n=%d", ErrOutOfRange, u, v, n)
	}
	if badWeight(cost) || badWeight(resource) {
		return fmt.Errorf("%w: edge %d→%d cost=%g resource=%g", ErrBadWeight, u, v, cost, resource)
	}
	if cost < 0 || resource < 0 {
		return fmt.Errorf("%w: edge %d→%d cost=%g resource=%g", ErrNegativeWeight, u, v, cost, resource)
	}

	g.adj[u] = append(g.adj[u], Edge{To: v, Cost: cost, Resource: resource})
	g.edges++

	return nil
}

// Neighbors returns the outgoing edges of u in insertion order.
// The returned slice is shared with the graph and must not be modified.
// Out-of-range u yields nil.
func (g *Graph) Neighbors(u int) []Edge {
	if u < 0 || u >= len(g.adj) {
		return nil
	}

	return g.adj[u]
}

// N returns the number of nodes.
func (g *Graph) N() int { return len(g.adj) }

// EdgeCount returns the number of stored arcs, parallel arcs included.
func (g *Graph) EdgeCount() int { return g.edges }

// Contains reports whether u is a valid node index.
func (g *Graph) Contains(u int) bool { return u >= 0 && u < len(g.adj) }

// FirstEdge returns the first arc u→v in u's adjacency order.
//
// Complexity: O(deg(u)).
func (g *Graph) FirstEdge(u, v int) (Edge, bool) {
	if u < 0 || u >= len(g.adj) {
		return Edge{}, false
	}
	var e Edge
	for _, e = range g.adj[u] {
		if e.To == v {
			return e, true
		}
	}

	return Edge{}, false
}

// Edges calls fn for every arc, grouped by source node in ascending order and
// in insertion order within a node. Iteration stops when fn returns false.
func (g *Graph) Edges(fn func(u int, e Edge) bool) {
	var (
		u int
		e Edge
	)
	for u = range g.adj {
		for _, e = range g.adj[u] {
			if !fn(u, e) {
				return
			}
		}
	}
}

func badWeight(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
