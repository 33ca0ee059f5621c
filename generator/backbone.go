// SPDX-License-Identifier: MIT
// Package: rcsp/generator
//
// backbone.go: Backbone(n, m) builds a feasibility chain plus uniform random arcs.
//
// Model:
//   • Chain 0→1→…→n−1 guarantees that the target is reachable.
//   • Remaining m−(n−1) arcs join uniformly drawn distinct pairs u≠v that are
//     not yet connected (simple digraph).
//   • cost ∈ [1,21), resource ∈ [1,11); R = 5·n.
//
// Contract:
//   • n ≥ 2 (ErrTooFewNodes); n−1 ≤ m ≤ n·(n−1) (ErrTooFewEdges/ErrTooManyEdges).
//   • RNG required (ErrNeedRandSource).
//
// Complexity: O(m) expected draws while m is well below n·(n−1).

package generator

import (
	"fmt"

	"github.com/katalvlaran/rcsp/graph"
	"github.com/katalvlaran/rcsp/instance"
)

const (
	methodBackbone       = "Backbone"
	backboneBudgetFactor = 5.0
	backboneCostMin      = 1.0
	backboneCostMax      = 21.0
	backboneResMin       = 1.0
	backboneResMax       = 11.0
)

// Backbone generates a random simple digraph instance from 0 to n−1.
func Backbone(n, m int, opts ...Option) (*instance.Instance, error) {
	cfg := newConfig(opts...)
	if err := checkSizes(methodBackbone, n, m, n*(n-1)); err != nil {
		return nil, err
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodBackbone, ErrNeedRandSource)
	}

	g, err := graph.New(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodBackbone, err)
	}
	seen := make(map[[2]int]struct{}, m)
	add := func(u, v int) error {
		seen[[2]int{u, v}] = struct{}{}
		return g.AddEdge(u, v,
			cfg.uniform(backboneCostMin, backboneCostMax),
			cfg.uniform(backboneResMin, backboneResMax))
	}

	for i := 1; i < n; i++ {
		if err = add(i-1, i); err != nil {
			return nil, fmt.Errorf("%s: chain: %w", methodBackbone, err)
		}
	}
	for g.EdgeCount() < m {
		u, v := cfg.rng.Intn(n), cfg.rng.Intn(n)
		if u == v {
			continue
		}
		if _, dup := seen[[2]int{u, v}]; dup {
			continue
		}
		if err = add(u, v); err != nil {
			return nil, fmt.Errorf("%s: %w", methodBackbone, err)
		}
	}

	return &instance.Instance{
		Name:   nameOr(cfg.name, methodBackbone, n, m),
		Graph:  g,
		Source: 0,
		Target: n - 1,
		Budget: cfg.budget(n, backboneBudgetFactor),
	}, nil
}

func checkSizes(method string, n, m, capacity int) error {
	if n < 2 {
		return fmt.Errorf("%s: n=%d: %w", method, n, ErrTooFewNodes)
	}
	if m < n-1 {
		return fmt.Errorf("%s: m=%d < n-1=%d: %w", method, m, n-1, ErrTooFewEdges)
	}
	if m > capacity {
		return fmt.Errorf("%s: m=%d > %d: %w", method, m, capacity, ErrTooManyEdges)
	}

	return nil
}

func nameOr(name, method string, n, m int) string {
	if name != "" {
		return name
	}

	return fmt.Sprintf("%s-%d-%d", method, n, m)
}
