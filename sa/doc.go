// Package sa solves the Resource-Constrained Shortest Path problem (RCSP) with
// Simulated Annealing.
//
// Problem: on a directed multigraph whose arcs carry (cost, resource), find a
// path Source→Target minimising total cost subject to total resource ≤ Budget.
// Exact RCSP is NP-hard; this package trades optimality for speed.
//
// Building blocks (each usable on its own):
//
//   - Constructor.Construct - randomized greedy walk Source→Target over
//     unvisited nodes, retried a bounded number of times. When every attempt
//     gets stuck it returns the degenerate path [Source] and ok=false.
//   - Constructor.Regrow - single-attempt walk from the last node of a prefix,
//     never revisiting prefix nodes. A stuck walk simply stops early.
//   - Constructor.Neighbor - "cut-and-reconnect": keep a random prefix of the
//     current path, regrow the suffix. Paths shorter than 3 are reseeded.
//   - Evaluate - (cost, resource, reaches-target, fitness) with soft penalties:
//     fitness = cost + ResourcePenalty·max(0, resource−Budget)
//     (+ TargetPenalty when the path does not end at Target).
//   - Accept - Metropolis rule: accept if Δ<0, else iff exp(−Δ/T) > U[0,1).
//   - Engine - geometric cooling T ← α·T after every plateau of moves; keeps
//     the best solution that reaches Target.
//
// Every path produced here is simple (no repeated node) and every consecutive
// pair is an arc of the graph.
//
// Determinism:
//
//   - All randomness flows through a Rand supplied in Options (or derived from
//     Options.Seed; Seed==0 selects a fixed default). Same seed ⇒ same result.
//   - SolveMulti derives an independent stream per start (SplitMix64 mixing),
//     so parallel restarts stay reproducible.
//
// Termination: T ≤ MinTemperature, MaxIterations moves, TimeLimit elapsed, or
// ctx cancelled. Deadline and ctx are polled once per temperature step.
//
// Failure semantics: an unreachable Target is not an error. The engine runs on
// the degenerate solution and the caller inspects Result.Best.ReachesTarget.
// Resource feasibility is a separate flag (Result.ResourceFeasible): paths that
// overrun the budget are penalised, never discarded.
package sa
