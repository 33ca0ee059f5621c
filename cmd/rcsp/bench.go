package main

import (
	"context"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/bench"
	"github.com/katalvlaran/rcsp/generator"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/internal/config"
)

var benchCommand = command{
	summary: "benchmark instance files, or the generated standard suite when none are given",
	usage:   "[flags] [INSTANCE...]",
	flags: func(fs *pflag.FlagSet) {
		config.AddSolverFlags(fs)
		config.AddBenchFlags(fs)
		fs.String("kind", "backbone", "suite topology when no files are given: backbone|layered")
	},
	run: runBench,
}

func runBench(ctx context.Context, e *env, args []string) error {
	var (
		ins []*instance.Instance
		err error
	)
	if len(args) == 0 {
		name, _ := e.fs.GetString("kind")
		kind, err := generator.ParseKind(name)
		if err != nil {
			return usagef("bench: %v", err)
		}
		if ins, err = generator.Generate(kind, generator.StandardSuite(), e.cfg.Bench.Seed); err != nil {
			return err
		}
	}
	for _, path := range args {
		in, err := instance.Load(path)
		if err != nil {
			return err
		}
		ins = append(ins, in)
	}

	workers := e.cfg.Bench.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	e.log.Info("benchmark started", "instances", len(ins), "runs", e.cfg.Bench.Runs, "workers", workers)

	rep, err := bench.Run(ctx, ins, bench.Options{
		Runs:    e.cfg.Bench.Runs,
		Seed:    e.cfg.Bench.Seed,
		Workers: workers,
		Solver:  e.cfg.SolverOptions(nil),
		Logger:  e.log,
	})
	if err != nil {
		return err
	}
	if e.cfg.Bench.Format == "json" {
		return rep.WriteJSON(e.stdout)
	}

	return rep.WriteText(e.stdout)
}
