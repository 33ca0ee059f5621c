// Package dijkstra_test provides runnable examples.
package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/rcsp/dijkstra"
	"github.com/katalvlaran/rcsp/graph"
)

// ExampleShortest computes cheapest distances and rebuilds one path.
func ExampleShortest() {
	g, _ := graph.New(4)
	_ = g.AddEdge(0, 1, 2, 1)
	_ = g.AddEdge(0, 2, 1, 1)
	_ = g.AddEdge(2, 1, 1, 1)
	_ = g.AddEdge(1, 3, 3, 1)
	_ = g.AddEdge(2, 3, 5, 1)

	dist, prev, err := dijkstra.Shortest(g, 0, dijkstra.ByCost)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("dist[3]=%g path=%v\n", dist[3], dijkstra.PathTo(prev, 0, 3))
	// Output: dist[3]=5 path=[0 1 3]
}

// ExampleComputeBounds certifies a budget as too tight for the cheapest path
// while still feasible through the lean route.
func ExampleComputeBounds() {
	g, _ := graph.New(3)
	_ = g.AddEdge(0, 2, 1, 9) // cheap, resource-heavy
	_ = g.AddEdge(0, 1, 2, 1)
	_ = g.AddEdge(1, 2, 2, 1)

	b, err := dijkstra.ComputeBounds(g, 0, 2, 4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("lower=%g lean=%v feasible=%t optimal=%t\n", b.MinCost, b.MinResourcePath, b.Feasible, b.Optimal)
	// Output: lower=1 lean=[0 1 2] feasible=true optimal=false
}
