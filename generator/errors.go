// SPDX-License-Identifier: MIT
// Package: rcsp/generator
//
// errors.go: sentinel errors for the generator package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with %w (method tag + offending values).
//   • Generators never panic on user input.

package generator

import "errors"

// ErrTooFewNodes indicates n < 2: source and target must differ.
var ErrTooFewNodes = errors.New("generator: need at least 2 nodes")

// ErrTooFewEdges indicates m < n−1, so the feasibility chain does not fit.
var ErrTooFewEdges = errors.New("generator: edge count below chain length")

// ErrTooManyEdges indicates m exceeds the number of distinct arcs the
// topology admits.
var ErrTooManyEdges = errors.New("generator: edge count exceeds topology capacity")

// ErrNeedRandSource indicates that no RNG was configured (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("generator: rng is required")

// ErrUnknownKind indicates an unrecognised topology name.
var ErrUnknownKind = errors.New("generator: unknown kind")
