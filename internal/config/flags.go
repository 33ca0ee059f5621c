package config

import (
	"time"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/sa"
)

// keyAnnotation links a flag to its configuration key.
const keyAnnotation = "koanf-key"

func bind(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, keyAnnotation, []string{key})
}

// flagKey returns the posflag callback translating annotated flags to keys;
// unannotated flags are skipped.
func flagKey(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		keys := f.Annotations[keyAnnotation]
		if len(keys) == 0 {
			return "", nil
		}
		return keys[0], posflag.FlagVal(fs, f)
	}
}

// AddLogFlags registers --log-level and --log-format.
func AddLogFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level: debug|info|warn|error")
	fs.String("log-format", "text", "log format: text|json")
	bind(fs, "log-level", "log.level")
	bind(fs, "log-format", "log.format")
}

// AddSolverFlags registers the annealing knobs.
func AddSolverFlags(fs *pflag.FlagSet) {
	d := sa.DefaultOptions()
	fs.Float64("t0", d.InitialTemperature, "initial temperature")
	fs.Float64("alpha", d.CoolingRate, "geometric cooling rate in (0,1)")
	fs.Float64("tmin", d.MinTemperature, "stop temperature")
	fs.Int("iterations", d.MaxIterations, "maximum neighbourhood moves")
	fs.Int("plateau", d.Plateau, "moves per temperature step")
	fs.Int("attempts", d.ConstructAttempts, "construction retries")
	fs.Float64("resource-penalty", d.ResourcePenalty, "penalty per unit of resource over budget")
	fs.Float64("target-penalty", d.TargetPenalty, "penalty for not reaching the target")
	fs.Int64("seed", 0, "random seed (0 = default)")
	fs.Duration("time-limit", 0, "wall-clock limit per solve (0 = none)")
	fs.Int("starts", 1, "independent parallel restarts")

	for name, key := range map[string]string{
		"t0":               "solver.initial_temperature",
		"alpha":            "solver.cooling_rate",
		"tmin":             "solver.min_temperature",
		"iterations":       "solver.max_iterations",
		"plateau":          "solver.plateau",
		"attempts":         "solver.construct_attempts",
		"resource-penalty": "solver.resource_penalty",
		"target-penalty":   "solver.target_penalty",
		"seed":             "solver.seed",
		"time-limit":       "solver.time_limit",
		"starts":           "solver.starts",
	} {
		bind(fs, name, key)
	}
}

// AddBenchFlags registers the benchmark flags. Solver flags are registered
// separately; --seed here is the benchmark base seed.
func AddBenchFlags(fs *pflag.FlagSet) {
	fs.Int("runs", 5, "seeded solves per instance")
	fs.Int("workers", 0, "concurrent solves (0 = GOMAXPROCS)")
	fs.Int64("bench-seed", 1, "base seed for per-run seeds")
	fs.String("format", "text", "report format: text|json")
	bind(fs, "runs", "bench.runs")
	bind(fs, "workers", "bench.workers")
	bind(fs, "bench-seed", "bench.seed")
	bind(fs, "format", "bench.format")
}

// AddServerFlags registers the HTTP server flags.
func AddServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8080", "listen address")
	fs.Duration("solve-timeout", 30*time.Second, "per-request solve deadline")
	bind(fs, "addr", "server.addr")
	bind(fs, "solve-timeout", "server.solve_timeout")
}

// AddGenerateFlags registers the instance generator flags.
func AddGenerateFlags(fs *pflag.FlagSet) {
	fs.String("kind", "backbone", "topology: backbone|layered")
	fs.Int("nodes", 0, "node count (0 = standard suite)")
	fs.Int("edges", 0, "edge count")
	fs.Int64("seed", 1, "generator seed")
	fs.String("dir", "instances", "output directory")
	bind(fs, "kind", "generate.kind")
	bind(fs, "nodes", "generate.nodes")
	bind(fs, "edges", "generate.edges")
	bind(fs, "seed", "generate.seed")
	bind(fs, "dir", "generate.dir")
}
