// Package dijkstra computes single-criterion shortest paths on the two-weight
// graph and derives reference bounds for resource-constrained instances.
//
// Overview:
//
//   - Shortest runs Dijkstra from one source over either arc weight (ByCost
//     or ByResource) in O((V + E) log V) using a lazy-decrease-key min-heap.
//   - ComputeBounds combines two runs into the classical RCSP certificates:
//     the unconstrained cheapest path is a lower bound on any feasible cost,
//     the least-resource path decides feasibility, and when the cheapest path
//     already fits the budget it is optimal.
//
// The annealing solver does not depend on this package; bounds are used to
// report optimality gaps and to reject infeasible instances early.
//
// Options:
//
//   - WithMaxDistance(x):      do not expand vertices farther than x (x ≥ 0).
//   - WithInfEdgeThreshold(t): treat arcs with weight ≥ t as impassable (t > 0).
//
// Errors (sentinel):
//
//   - ErrNilGraph        graph pointer is nil.
//   - ErrVertexNotFound  source or target outside [0, n).
//   - ErrBadMaxDistance  MaxDistance < 0 or NaN.
//   - ErrBadInfThreshold InfEdgeThreshold ≤ 0 or NaN.
//   - ErrBadBudget       negative or non-finite budget passed to ComputeBounds.
//
// Weights are validated non-negative by graph.AddEdge, so no pre-scan is needed.
//
// Thread safety: concurrent queries on the same graph are safe as long as no
// goroutine adds arcs meanwhile.
package dijkstra
