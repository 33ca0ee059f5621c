package sa

import "github.com/katalvlaran/rcsp/graph"

// Evaluate scores path against target and budget.
//
// Cost and resource sum the first matching arc (adjacency order) of every
// consecutive pair. An empty path or a pair without an arc yields
// Fitness=WorstFitness. Otherwise
//
//	fitness = cost
//	        + resourcePenalty·(resource − budget)   if resource > budget
//	        + targetPenalty                         if the path does not end at target
//
// The returned Solution shares path; callers hand over ownership.
//
// Complexity: O(Σ out-degree along the path).
func Evaluate(g *graph.Graph, path []int, target int, budget, resourcePenalty, targetPenalty float64) Solution {
	s := Solution{Path: path}
	if len(path) == 0 {
		s.Fitness = WorstFitness
		return s
	}
	s.ReachesTarget = path[len(path)-1] == target

	for i := 1; i < len(path); i++ {
		e, ok := g.FirstEdge(path[i-1], path[i])
		if !ok {
			s.Fitness = WorstFitness
			return s
		}
		s.Cost += e.Cost
		s.Resource += e.Resource
	}

	s.Fitness = s.Cost
	if s.Resource > budget {
		s.Fitness += resourcePenalty * (s.Resource - budget)
	}
	if !s.ReachesTarget {
		s.Fitness += targetPenalty
	}

	return s
}
