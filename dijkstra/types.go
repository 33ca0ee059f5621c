package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/rcsp/graph"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *graph.Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates a source or target outside the graph.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrBadMaxDistance indicates a negative or NaN MaxDistance.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates a zero, negative or NaN InfEdgeThreshold,
	// which would make every arc (including zero-weight ones) impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")

	// ErrBadBudget indicates a negative or non-finite resource budget.
	ErrBadBudget = errors.New("dijkstra: budget must be finite and non-negative")
)

// Weight selects which arc attribute Dijkstra minimises.
type Weight int

const (
	// ByCost minimises the sum of arc costs.
	ByCost Weight = iota
	// ByResource minimises the sum of arc resources.
	ByResource
)

// String implements fmt.Stringer.
func (w Weight) String() string {
	switch w {
	case ByCost:
		return "cost"
	case ByResource:
		return "resource"
	default:
		return "unknown"
	}
}

func (w Weight) of(e graph.Edge) float64 {
	if w == ByResource {
		return e.Resource
	}

	return e.Cost
}

// Options configures a Dijkstra run.
//
// MaxDistance      – vertices whose distance would exceed this are not explored.
// InfEdgeThreshold – arcs with selected weight ≥ this are skipped.
//
// Both default to +Inf (no cap, no obstacles).
type Options struct {
	MaxDistance      float64
	InfEdgeThreshold float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxDistance caps exploration at max. Invalid values are reported by
// Shortest as ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold marks arcs with weight ≥ threshold as impassable.
// Invalid values are reported by Shortest as ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns the uncapped configuration.
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}
