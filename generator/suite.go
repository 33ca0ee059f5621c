// SPDX-License-Identifier: MIT
// Package: rcsp/generator
//
// suite.go: named presets used by the benchmark harness.

package generator

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/rcsp/instance"
)

// Kind selects a topology.
type Kind string

const (
	KindBackbone Kind = "backbone"
	KindLayered  Kind = "layered"
)

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBackbone, KindLayered:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Build dispatches to the generator for k.
func Build(k Kind, n, m int, opts ...Option) (*instance.Instance, error) {
	switch k {
	case KindBackbone:
		return Backbone(n, m, opts...)
	case KindLayered:
		return Layered(n, m, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}

// Preset is a named (n, m) size class.
type Preset struct {
	Name  string
	Nodes int
	Edges int
}

// StandardSuite returns the four benchmark size classes, smallest first.
func StandardSuite() []Preset {
	return []Preset{
		{Name: "small", Nodes: 20, Edges: 50},
		{Name: "medium", Nodes: 50, Edges: 200},
		{Name: "large", Nodes: 100, Edges: 800},
		{Name: "xlarge", Nodes: 200, Edges: 2000},
	}
}

// Generate builds every preset with topology k. Each preset gets its own
// RNG stream derived from seed so adding presets does not shift the others.
func Generate(k Kind, presets []Preset, seed int64, opts ...Option) ([]*instance.Instance, error) {
	out := make([]*instance.Instance, 0, len(presets))
	for i, p := range presets {
		o := append([]Option{WithSeed(seed + int64(i)), WithName(p.Name)}, opts...)
		in, err := Build(k, p.Nodes, p.Edges, o...)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		out = append(out, in)
	}

	return out, nil
}
