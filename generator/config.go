// SPDX-License-Identifier: MIT
// Package: rcsp/generator
//
// config.go: generator configuration and functional options.
//
// Deterministic defaults:
//   • rng          = nil   (stochastic generators require WithSeed/WithRand)
//   • budgetFactor = 0     (use the topology's own R = factor·n)
//   • decimals     = 2     (weights rounded to cents, as in the text format)

package generator

import (
	"math"
	"math/rand"
)

const defaultDecimals = 2

// Option customises a generator run.
type Option func(*genConfig)

type genConfig struct {
	rng          *rand.Rand
	budgetFactor float64
	decimals     int
	name         string
}

func newConfig(opts ...Option) genConfig {
	cfg := genConfig{decimals: defaultDecimals}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed installs a deterministic RNG seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *genConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand installs r as the RNG. Not safe to share across goroutines.
func WithRand(r *rand.Rand) Option {
	return func(c *genConfig) {
		c.rng = r
	}
}

// WithBudgetFactor overrides the topology's budget: R = factor·n.
// Non-positive values keep the default.
func WithBudgetFactor(factor float64) Option {
	return func(c *genConfig) {
		c.budgetFactor = factor
	}
}

// WithDecimals sets the rounding precision of generated weights.
// Negative values disable rounding.
func WithDecimals(d int) Option {
	return func(c *genConfig) {
		c.decimals = d
	}
}

// WithName labels the produced instance.
func WithName(name string) Option {
	return func(c *genConfig) {
		c.name = name
	}
}

// uniform draws from [lo, hi) and rounds to the configured precision.
func (c genConfig) uniform(lo, hi float64) float64 {
	x := lo + c.rng.Float64()*(hi-lo)
	if c.decimals < 0 {
		return x
	}
	p := math.Pow10(c.decimals)

	return math.Round(x*p) / p
}

func (c genConfig) budget(n int, defaultFactor float64) float64 {
	f := defaultFactor
	if c.budgetFactor > 0 {
		f = c.budgetFactor
	}

	return f * float64(n)
}
