package graph

import (
	"fmt"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Reachable reports whether target can be reached from source by following
// arcs forward. Weights and the resource budget are ignored.
//
// The adjacency is mirrored into a gonum simple.DirectedGraph (parallel arcs
// collapse, self-loops are dropped since they never help reach another node)
// and walked breadth-first from source.
//
// Complexity: O(V + E) time and space.
func (g *Graph) Reachable(source, target int) (bool, error) {
	if !g.Contains(source) || !g.Contains(target) {
		return false, fmt.Errorf("%w: source=%d target=%d n=%d", ErrOutOfRange, source, target, g.N())
	}
	if source == target {
		return true, nil
	}

	dg := g.directed()
	var bfs traverse.BreadthFirst
	found := bfs.Walk(dg, dg.Node(int64(source)), func(n gonum.Node, _ int) bool {
		return n.ID() == int64(target)
	})

	return found != nil, nil
}

// directed builds a gonum view of g. Node IDs equal node indices.
func (g *Graph) directed() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	var u int
	for u = range g.adj {
		dg.AddNode(simple.Node(u))
	}
	g.Edges(func(u int, e Edge) bool {
		if u == e.To {
			return true
		}
		dg.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(e.To)})
		return true
	})

	return dg
}
