// Package graph provides the immutable, int-indexed directed multigraph consumed
// by the RCSP solvers in this module.
//
// Every edge carries two non-negative weights:
//
//	cost      – the quantity the solver minimises,
//	resource  – the quantity bounded by the budget R.
//
// Nodes are plain integers in [0, n). Each node owns an ordered slice of its
// outgoing edges; order is insertion order and is preserved for the lifetime
// of the graph. Parallel edges between the same pair are kept as-is: lookups
// such as FirstEdge return the first match in adjacency order.
//
// Undirected relationships are the caller's business: add two directed edges.
//
// Lifecycle:
//
//   - Build once with New + AddEdge.
//   - Hand the *Graph to a solver. From then on it is read-only; concurrent
//     readers (e.g. parallel restarts) are safe because nothing mutates it.
//
// Errors (sentinel):
//
//   - ErrTooFewNodes    n < 1 in New.
//   - ErrOutOfRange     an edge endpoint outside [0, n).
//   - ErrNegativeWeight a negative cost or resource.
//   - ErrBadWeight      a NaN or infinite cost or resource.
//
// Reachable answers "can target be reached from source at all?" through a
// breadth-first traversal on a gonum view of the graph; loaders and the CLI use
// it to warn before spending an annealing budget on a hopeless instance.
package graph
