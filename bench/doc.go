// Package bench runs the annealing solver over a set of instances and
// produces a comparison report.
//
// For every instance Run performs Options.Runs independently seeded solves
// (bounded parallelism), computes the Dijkstra reference bounds once, and
// aggregates a Row: best cost, spread across runs, improvement over the
// random initial path, and gap to the unconstrained lower bound. The Report
// is stamped with a run ID, a timestamp and the host description, and can be
// written as an aligned text table or as JSON.
package bench
