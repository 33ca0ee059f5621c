// SPDX-License-Identifier: MIT
// Package: rcsp/generator
//
// layered.go: Layered(n, m) builds a cheap chain plus forward jumps.
//
// Model:
//   • Chain i→i+1 with cost ∈ [1,11), resource ∈ [1,6).
//   • m−(n−1) forward jumps u→u+k, u ∈ [0, n−1), k ∈ [1, max(5, n/10)],
//     cost ∈ [5,25), resource ∈ [1,11). Parallel arcs are allowed.
//   • R = 10·n.
//
// Jumps trade cost for resource, so the chain is resource-hungry but cheap
// per hop and the budget actually binds on larger instances.
//
// Contract: n ≥ 2, m ≥ n−1, RNG required. No upper bound on m (multigraph).

package generator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rcsp/graph"
	"github.com/katalvlaran/rcsp/instance"
)

const (
	methodLayered       = "Layered"
	layeredBudgetFactor = 10.0
	layeredMinJump      = 5
	chainCostMin        = 1.0
	chainCostMax        = 11.0
	chainResMin         = 1.0
	chainResMax         = 6.0
	jumpCostMin         = 5.0
	jumpCostMax         = 25.0
	jumpResMin          = 1.0
	jumpResMax          = 11.0
)

// Layered generates a forward-only multigraph instance from 0 to n−1.
func Layered(n, m int, opts ...Option) (*instance.Instance, error) {
	cfg := newConfig(opts...)
	if err := checkSizes(methodLayered, n, m, math.MaxInt); err != nil {
		return nil, err
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodLayered, ErrNeedRandSource)
	}

	g, err := graph.New(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodLayered, err)
	}
	for i := 0; i+1 < n; i++ {
		if err = g.AddEdge(i, i+1,
			cfg.uniform(chainCostMin, chainCostMax),
			cfg.uniform(chainResMin, chainResMax)); err != nil {
			return nil, fmt.Errorf("%s: chain: %w", methodLayered, err)
		}
	}

	maxJump := max(layeredMinJump, n/10)
	for g.EdgeCount() < m {
		u := cfg.rng.Intn(n - 1)
		v := u + 1 + cfg.rng.Intn(maxJump)
		if v >= n {
			continue
		}
		if err = g.AddEdge(u, v,
			cfg.uniform(jumpCostMin, jumpCostMax),
			cfg.uniform(jumpResMin, jumpResMax)); err != nil {
			return nil, fmt.Errorf("%s: %w", methodLayered, err)
		}
	}

	return &instance.Instance{
		Name:   nameOr(cfg.name, methodLayered, n, m),
		Graph:  g,
		Source: 0,
		Target: n - 1,
		Budget: cfg.budget(n, layeredBudgetFactor),
	}, nil
}
