package dijkstra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rcsp/graph"
)

// Bounds are the exact single-criterion certificates for one RCSP instance.
//
// All fields are zero when the target is unreachable (Reachable=false).
type Bounds struct {
	// Reachable reports whether any path source→target exists.
	Reachable bool `json:"reachable"`

	// MinCost is the cost of the cheapest path ignoring the budget: a lower
	// bound on every feasible solution's cost.
	MinCost float64 `json:"min_cost"`

	// MinCostResource is the resource used by that cheapest path.
	MinCostResource float64 `json:"min_cost_resource"`

	// MinCostPath is the cheapest path itself.
	MinCostPath []int `json:"min_cost_path,omitempty"`

	// MinResource is the least resource any path needs. MinResource > budget
	// certifies that no feasible path exists.
	MinResource float64 `json:"min_resource"`

	// MinResourceCost is the cost of that least-resource path; when feasible
	// it is an upper bound on the optimum.
	MinResourceCost float64 `json:"min_resource_cost"`

	// MinResourcePath is the least-resource path itself.
	MinResourcePath []int `json:"min_resource_path,omitempty"`

	// Feasible reports MinResource ≤ budget.
	Feasible bool `json:"feasible"`

	// Optimal reports that the cheapest path fits the budget, so MinCost is
	// the exact constrained optimum.
	Optimal bool `json:"optimal"`
}

// ComputeBounds runs Dijkstra twice (by cost and by resource) from source
// and reports the certificates for target under budget.
//
// Complexity: O((V + E) log V).
func ComputeBounds(g *graph.Graph, source, target int, budget float64) (Bounds, error) {
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return Bounds{}, fmt.Errorf("%w: %v", ErrBadBudget, budget)
	}
	if g != nil && !g.Contains(target) {
		return Bounds{}, fmt.Errorf("%w: target %d (n=%d)", ErrVertexNotFound, target, g.N())
	}

	byCost, err := newRunner(g, source, ByCost, nil)
	if err != nil {
		return Bounds{}, err
	}
	byCost.process()
	if math.IsInf(byCost.dist[target], 1) {
		return Bounds{}, nil
	}
	byRes, err := newRunner(g, source, ByResource, nil)
	if err != nil {
		return Bounds{}, err
	}
	byRes.process()

	var b Bounds
	b.Reachable = true
	b.MinCostPath = PathTo(byCost.prev, source, target)
	b.MinCost, b.MinCostResource = byCost.totals(b.MinCostPath)
	b.MinResourcePath = PathTo(byRes.prev, source, target)
	b.MinResourceCost, b.MinResource = byRes.totals(b.MinResourcePath)
	b.Feasible = b.MinResource <= budget
	b.Optimal = b.MinCostResource <= budget

	return b, nil
}

// totals sums both weights of the arcs the run actually relaxed along path.
func (r *runner) totals(path []int) (cost, resource float64) {
	for _, v := range path[1:] {
		cost += r.via[v].Cost
		resource += r.via[v].Resource
	}

	return cost, resource
}
