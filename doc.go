// Package rcsp finds cheap paths under a resource budget: the Resource
// Constrained Shortest Path problem, solved by simulated annealing.
//
// 🚀 What is rcsp?
//
//	A directed graph where every arc carries a cost and a resource, a source,
//	a target and a budget R. Find a simple path source→target minimising the
//	total cost while the total resource stays ≤ R. The problem is NP-hard;
//	rcsp answers with a seeded, reproducible metaheuristic and certifies the
//	answer against exact Dijkstra bounds.
//
// ✨ What is inside?
//
//   - Annealing engine – random-walk construction, single-cut regrow moves,
//     penalised fitness, Metropolis acceptance, geometric cooling
//   - Multi-start – independent seeded engines run in parallel
//   - Reference bounds – cost lower bound and infeasibility certificate
//   - Instances – plain-text reader/writer and random generators
//   - Benchmark – seeded repeat runs with a text or JSON report
//   - Surfaces – a CLI and an HTTP API
//
// Packages:
//
//	graph/     - int-indexed directed multigraph with cost/resource arcs
//	sa/        - the annealing engine, constructor, neighbourhood and fitness
//	dijkstra/  - shortest paths by either weight and the RCSP bounds
//	instance/  - the N M SOURCE TARGET R text format
//	generator/ - backbone and layered random instances, standard suite
//	bench/     - benchmark runner and reports
//	cmd/rcsp/  - solve | bench | generate | serve
//
// Quick ASCII example:
//
//	      (1,4)     (1,4)
//	    0 ─────→ 1 ─────→ 3        R = 5
//	    │                 ↑
//	    └─────→ 2 ────────┘
//	      (3,1)     (3,1)
//
// The cheap route 0→1→3 costs 2 but uses 8 units of resource; the solver
// settles on 0→2→3 (cost 6, resource 2).
//
//	go run ./cmd/rcsp solve instances/small.txt
package rcsp
