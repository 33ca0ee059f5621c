package sa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rcsp/graph"
)

// validateProblem checks graph presence, endpoint ranges and the budget.
func validateProblem(p Problem) error {
	if p.Graph == nil {
		return ErrNilGraph
	}
	if !p.Graph.Contains(p.Source) || !p.Graph.Contains(p.Target) {
		return fmt.Errorf("%w: source=%d target=%d n=%d", ErrNodeOutOfRange, p.Source, p.Target, p.Graph.N())
	}
	if p.Budget < 0 || math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) {
		return fmt.Errorf("%w: %v", ErrBadBudget, p.Budget)
	}

	return nil
}

// validateOptions enforces the numeric domains documented on Options.
func validateOptions(o Options) error {
	if !(o.MinTemperature > 0) || !(o.InitialTemperature > o.MinTemperature) || math.IsInf(o.InitialTemperature, 0) {
		return fmt.Errorf("%w: T0=%v Tmin=%v", ErrBadTemperature, o.InitialTemperature, o.MinTemperature)
	}
	if !(o.CoolingRate > 0 && o.CoolingRate < 1) {
		return fmt.Errorf("%w: %v", ErrBadCoolingRate, o.CoolingRate)
	}
	if o.MaxIterations <= 0 || o.Plateau <= 0 || o.ConstructAttempts <= 0 {
		return fmt.Errorf("%w: max_iterations=%d plateau=%d construct_attempts=%d",
			ErrBadLimit, o.MaxIterations, o.Plateau, o.ConstructAttempts)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit=%s", ErrBadLimit, o.TimeLimit)
	}
	if !finiteNonNegative(o.ResourcePenalty) || !finiteNonNegative(o.TargetPenalty) {
		return fmt.Errorf("%w: resource=%v target=%v", ErrBadPenalty, o.ResourcePenalty, o.TargetPenalty)
	}

	return nil
}

func finiteNonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}

// ValidatePath reports whether path starts at source, repeats no node and
// follows arcs of g. It returns nil or an error wrapping ErrBadPath.
func ValidatePath(g *graph.Graph, path []int, source int) error {
	if g == nil {
		return ErrNilGraph
	}
	if len(path) == 0 {
		return fmt.Errorf("%w: empty", ErrBadPath)
	}
	if path[0] != source {
		return fmt.Errorf("%w: starts at %d, want %d", ErrBadPath, path[0], source)
	}
	seen := make(map[int]struct{}, len(path))
	for i, u := range path {
		if !g.Contains(u) {
			return fmt.Errorf("%w: node %d at %d out of range", ErrBadPath, u, i)
		}
		if _, dup := seen[u]; dup {
			return fmt.Errorf("%w: node %d repeated at %d", ErrBadPath, u, i)
		}
		seen[u] = struct{}{}
		if i > 0 {
			if _, ok := g.FirstEdge(path[i-1], u); !ok {
				return fmt.Errorf("%w: no arc %d->%d", ErrBadPath, path[i-1], u)
			}
		}
	}

	return nil
}
