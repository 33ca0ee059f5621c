package sa

import (
	"errors"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/katalvlaran/rcsp/graph"
)

// Sentinel errors. Options and Problem validation wrap these with the
// offending value; match with errors.Is.
var (
	// ErrNilGraph indicates Problem.Graph is nil.
	ErrNilGraph = errors.New("sa: graph is nil")

	// ErrNodeOutOfRange indicates Source or Target outside [0, n).
	ErrNodeOutOfRange = errors.New("sa: node out of range")

	// ErrBadBudget indicates a negative, NaN or infinite resource budget.
	ErrBadBudget = errors.New("sa: budget must be finite and non-negative")

	// ErrBadTemperature indicates temperatures not satisfying T0 > Tmin > 0.
	ErrBadTemperature = errors.New("sa: require InitialTemperature > MinTemperature > 0")

	// ErrBadCoolingRate indicates a cooling rate outside (0, 1).
	ErrBadCoolingRate = errors.New("sa: cooling rate must lie in (0, 1)")

	// ErrBadLimit indicates a non-positive iteration, plateau or attempt bound,
	// or a negative time limit.
	ErrBadLimit = errors.New("sa: limits must be positive")

	// ErrBadPenalty indicates a negative or non-finite penalty weight.
	ErrBadPenalty = errors.New("sa: penalties must be finite and non-negative")

	// ErrSharedRand indicates an explicit Rand was supplied to a parallel run;
	// a single source cannot be shared across goroutines.
	ErrSharedRand = errors.New("sa: explicit Rand cannot be shared by parallel starts")

	// ErrBadPath is returned by ValidatePath for paths that break the
	// simple-path or arc-existence invariants.
	ErrBadPath = errors.New("sa: invalid path")
)

// WorstFitness is the sentinel fitness of a path that cannot be scored
// (empty, or containing a pair with no arc). It compares above every real
// fitness and, unlike +Inf, survives JSON encoding.
const WorstFitness = math.MaxFloat64

// Defaults used by DefaultOptions.
const (
	DefaultInitialTemperature = 1000.0
	DefaultCoolingRate        = 0.99
	DefaultMinTemperature     = 0.01
	DefaultMaxIterations      = 50000
	DefaultPlateau            = 20
	DefaultConstructAttempts  = 1000
	DefaultResourcePenalty    = 100.0
	DefaultTargetPenalty      = 1_000_000.0
)

// Rand is the random source consumed by the solver. *math/rand.Rand satisfies
// it; tests inject scripted sources to pin acceptance decisions.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n); n > 0.
	Intn(n int) int
}

// Problem is one RCSP instance. The graph is read-only for the whole solve.
type Problem struct {
	Graph  *graph.Graph
	Source int
	Target int
	Budget float64
}

// Solution is a path together with its derived scores. It is recomputed
// wholesale from Path by Evaluate and never patched incrementally.
type Solution struct {
	// Path starts at the problem's Source; no node repeats.
	Path []int `json:"path"`

	// Cost is the sum of arc costs along Path.
	Cost float64 `json:"cost"`

	// Resource is the sum of arc resources along Path.
	Resource float64 `json:"resource"`

	// Fitness is Cost plus soft penalties; lower is better.
	Fitness float64 `json:"fitness"`

	// ReachesTarget reports whether the last node of Path is the Target.
	ReachesTarget bool `json:"reaches_target"`
}

// WithinBudget reports whether the solution reaches the target without
// exceeding budget.
func (s Solution) WithinBudget(budget float64) bool {
	return s.ReachesTarget && s.Resource <= budget
}

// Clone returns a deep copy of s.
func (s Solution) Clone() Solution {
	s.Path = slices.Clone(s.Path)
	return s
}

// StopReason records which termination condition ended a run.
type StopReason string

const (
	StopMinTemperature StopReason = "min_temperature"
	StopMaxIterations  StopReason = "max_iterations"
	StopDeadline       StopReason = "deadline"
	StopCancelled      StopReason = "cancelled"
)

// Result is the outcome of a single annealing run.
type Result struct {
	// Best is the best solution found that reaches the target, or the initial
	// (possibly degenerate) solution when none does.
	Best Solution `json:"best"`

	// Initial is the evaluated starting solution.
	Initial Solution `json:"initial"`

	// ResourceFeasible is Best.WithinBudget(Budget).
	ResourceFeasible bool `json:"resource_feasible"`

	Iterations       int           `json:"iterations"`
	TemperatureSteps int           `json:"temperature_steps"`
	FinalTemperature float64       `json:"final_temperature"`
	Accepted         int           `json:"accepted"`
	AcceptedWorse    int           `json:"accepted_worse"`
	Improvements     int           `json:"improvements"`
	Elapsed          time.Duration `json:"elapsed"`
	Stop             StopReason    `json:"stop"`
}

// Step describes one neighbourhood move; passed to Options.Hook.
// Current and Best share their Path slices with the engine: read, do not keep.
type Step struct {
	Iteration   int
	Temperature float64
	Delta       float64
	Accepted    bool
	Current     Solution
	Best        Solution
}

// Hook observes every move of a run. It runs on the engine goroutine; under
// SolveMulti it is called concurrently from several goroutines.
type Hook func(Step)

// Options configures the annealing engine.
//
// InitialTemperature – starting temperature T0 (> MinTemperature).
// CoolingRate        – α in T ← α·T, applied after each plateau; in (0,1).
// MinTemperature     – stop once T ≤ MinTemperature (> 0).
// MaxIterations      – cap on neighbourhood moves (> 0).
// Plateau            – moves per temperature step (≥ 1).
// ConstructAttempts  – retries for the initial/reseed construction (≥ 1).
// ResourcePenalty    – weight per unit of resource over budget (≥ 0).
// TargetPenalty      – flat penalty for not reaching the target (≥ 0).
// Seed               – RNG seed; 0 selects the package default seed.
// Rand               – explicit random source; overrides Seed when non-nil.
// TimeLimit          – wall-clock budget; 0 disables the deadline.
// Logger             – diagnostics sink; nil discards.
// Hook               – optional per-move observer.
type Options struct {
	InitialTemperature float64
	CoolingRate        float64
	MinTemperature     float64
	MaxIterations      int
	Plateau            int
	ConstructAttempts  int
	ResourcePenalty    float64
	TargetPenalty      float64
	Seed               int64
	Rand               Rand
	TimeLimit          time.Duration
	Logger             *slog.Logger
	Hook               Hook
}

// DefaultOptions returns the canonical configuration:
//
//	T0=1000, α=0.99, Tmin=0.01, 50 000 moves, 20 moves per temperature,
//	1000 construction attempts, resource penalty 100, target penalty 1e6,
//	seed 0 (default stream), no deadline, no logging.
func DefaultOptions() Options {
	return Options{
		InitialTemperature: DefaultInitialTemperature,
		CoolingRate:        DefaultCoolingRate,
		MinTemperature:     DefaultMinTemperature,
		MaxIterations:      DefaultMaxIterations,
		Plateau:            DefaultPlateau,
		ConstructAttempts:  DefaultConstructAttempts,
		ResourcePenalty:    DefaultResourcePenalty,
		TargetPenalty:      DefaultTargetPenalty,
	}
}
