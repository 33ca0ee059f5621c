// Package config layers the rcsp configuration: built-in defaults, an
// optional TOML file, RCSP_* environment variables and command-line flags,
// in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/bench"
	"github.com/katalvlaran/rcsp/generator"
	"github.com/katalvlaran/rcsp/internal/logging"
	"github.com/katalvlaran/rcsp/sa"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "rcsp.toml"

// EnvPrefix prefixes environment overrides: RCSP_SOLVER_SEED → solver.seed.
const EnvPrefix = "RCSP_"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config holds all configuration for the application.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Solver   SolverConfig   `koanf:"solver"`
	Bench    BenchConfig    `koanf:"bench"`
	Server   ServerConfig   `koanf:"server"`
	Generate GenerateConfig `koanf:"generate"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SolverConfig mirrors sa.Options plus the number of parallel starts.
type SolverConfig struct {
	InitialTemperature float64       `koanf:"initial_temperature"`
	CoolingRate        float64       `koanf:"cooling_rate"`
	MinTemperature     float64       `koanf:"min_temperature"`
	MaxIterations      int           `koanf:"max_iterations"`
	Plateau            int           `koanf:"plateau"`
	ConstructAttempts  int           `koanf:"construct_attempts"`
	ResourcePenalty    float64       `koanf:"resource_penalty"`
	TargetPenalty      float64       `koanf:"target_penalty"`
	Seed               int64         `koanf:"seed"`
	TimeLimit          time.Duration `koanf:"time_limit"`
	Starts             int           `koanf:"starts"`
}

type BenchConfig struct {
	Runs    int    `koanf:"runs"`
	Workers int    `koanf:"workers"`
	Seed    int64  `koanf:"seed"`
	Format  string `koanf:"format"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
	SolveTimeout time.Duration `koanf:"solve_timeout"`
	MaxStarts    int           `koanf:"max_starts"`
	// MaxNodes caps instance headers; 0 derives it from MaxBodyBytes.
	MaxNodes int `koanf:"max_nodes"`
}

type GenerateConfig struct {
	Kind  string `koanf:"kind"`
	Nodes int    `koanf:"nodes"`
	Edges int    `koanf:"edges"`
	Seed  int64  `koanf:"seed"`
	Dir   string `koanf:"dir"`
}

// defaults is the lowest configuration layer.
func defaults() map[string]interface{} {
	d := sa.DefaultOptions()
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  "info",
			"format": logging.FormatText,
		},
		"solver": map[string]interface{}{
			"initial_temperature": d.InitialTemperature,
			"cooling_rate":        d.CoolingRate,
			"min_temperature":     d.MinTemperature,
			"max_iterations":      d.MaxIterations,
			"plateau":             d.Plateau,
			"construct_attempts":  d.ConstructAttempts,
			"resource_penalty":    d.ResourcePenalty,
			"target_penalty":      d.TargetPenalty,
			"seed":                int64(0),
			"time_limit":          time.Duration(0),
			"starts":              1,
		},
		"bench": map[string]interface{}{
			"runs":    bench.DefaultRuns,
			"workers": 0,
			"seed":    int64(1),
			"format":  "text",
		},
		"server": map[string]interface{}{
			"addr":           ":8080",
			"max_body_bytes": int64(8 << 20),
			"solve_timeout":  30 * time.Second,
			"max_starts":     16,
			"max_nodes":      0,
		},
		"generate": map[string]interface{}{
			"kind":  string(generator.KindBackbone),
			"nodes": 0,
			"edges": 0,
			"seed":  int64(1),
			"dir":   "instances",
		},
	}
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults.
//
// path names the TOML file; when empty, DefaultFile is used if it exists.
// Only flags annotated by the Add*Flags helpers are consulted, and only when
// set explicitly on the command line.
func Load(fset *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(makeMapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	if fset != nil {
		if err := k.Load(posflag.ProviderWithFlag(fset, ".", k, flagKey(fset)), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps RCSP_SOLVER_MAX_ITERATIONS to solver.max_iterations: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Validate checks cross-field constraints not expressible in types.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q", c.Log.Format))
	}
	if c.Solver.Starts < 1 {
		errs = append(errs, fmt.Errorf("solver.starts=%d < 1", c.Solver.Starts))
	}
	if c.Bench.Runs < 1 {
		errs = append(errs, fmt.Errorf("bench.runs=%d < 1", c.Bench.Runs))
	}
	switch c.Bench.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("bench.format %q", c.Bench.Format))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.MaxBodyBytes <= 0 || c.Server.MaxStarts < 1 || c.Server.SolveTimeout < 0 || c.Server.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("server limits: max_body_bytes=%d max_starts=%d solve_timeout=%s max_nodes=%d",
			c.Server.MaxBodyBytes, c.Server.MaxStarts, c.Server.SolveTimeout, c.Server.MaxNodes))
	}
	if _, err := generator.ParseKind(c.Generate.Kind); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// SolverOptions maps the solver section onto sa.Options.
func (c *Config) SolverOptions(lg *slog.Logger) sa.Options {
	s := c.Solver
	return sa.Options{
		InitialTemperature: s.InitialTemperature,
		CoolingRate:        s.CoolingRate,
		MinTemperature:     s.MinTemperature,
		MaxIterations:      s.MaxIterations,
		Plateau:            s.Plateau,
		ConstructAttempts:  s.ConstructAttempts,
		ResourcePenalty:    s.ResourcePenalty,
		TargetPenalty:      s.TargetPenalty,
		Seed:               s.Seed,
		TimeLimit:          s.TimeLimit,
		Logger:             lg,
	}
}

// Logger builds the process logger described by the log section.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level, c.Log.Format)
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}
