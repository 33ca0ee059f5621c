package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/bench"
	"github.com/katalvlaran/rcsp/dijkstra"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/internal/config"
	"github.com/katalvlaran/rcsp/internal/watch"
	"github.com/katalvlaran/rcsp/sa"
)

var solveCommand = command{
	summary: "solve one instance and print the best path",
	usage:   "[flags] INSTANCE",
	flags: func(fs *pflag.FlagSet) {
		config.AddSolverFlags(fs)
		fs.Bool("json", false, "print the result as JSON")
		fs.Bool("watch", false, "re-solve whenever the instance file changes")
		fs.Bool("no-bounds", false, "skip the Dijkstra reference bounds")
	},
	run: runSolve,
}

// solveOutput is the --json document.
type solveOutput struct {
	Instance string           `json:"instance"`
	Status   bench.Status     `json:"status,omitempty"`
	Result   sa.Result        `json:"result"`
	Bounds   *dijkstra.Bounds `json:"bounds,omitempty"`
}

func runSolve(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return usagef("solve: want exactly one INSTANCE, got %d", len(args))
	}
	path := args[0]
	asJSON, _ := e.fs.GetBool("json")
	watching, _ := e.fs.GetBool("watch")
	noBounds, _ := e.fs.GetBool("no-bounds")
	if watching && path == "-" {
		return usagef("solve: --watch needs a file, not stdin")
	}

	once := func() error {
		in, err := loadInstance(path)
		if err != nil {
			return err
		}
		out := solveOutput{Instance: in.Name}
		out.Result, _, err = sa.SolveMulti(ctx, in.Problem(), e.cfg.SolverOptions(e.log), e.cfg.Solver.Starts)
		if err != nil {
			return err
		}
		if !noBounds {
			b, err := dijkstra.ComputeBounds(in.Graph, in.Source, in.Target, in.Budget)
			if err != nil {
				return err
			}
			out.Bounds = &b
			out.Status = bench.Classify(out.Result, b)
		}

		if asJSON {
			enc := json.NewEncoder(e.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		return writeSolve(e.stdout, in, out)
	}

	if err := once(); err != nil {
		if !watching {
			return err
		}
		e.log.Error("solve failed", "error", err)
	}
	if !watching {
		return nil
	}

	e.log.Info("watching for changes", "path", path)
	err := watch.Watch(ctx, []string{path}, watch.DefaultQuiet, e.log, func(ch watch.Change) error {
		e.log.Info("instance changed, re-solving", "path", path)
		if err := once(); err != nil {
			// a half-written file is not fatal while watching
			e.log.Error("solve failed", "error", err)
		}
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}

	return err
}

func loadInstance(path string) (*instance.Instance, error) {
	if path != "-" {
		return instance.Load(path)
	}
	in, err := instance.Read(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	in.Name = "stdin"

	return in, nil
}

func writeSolve(w io.Writer, in *instance.Instance, out solveOutput) error {
	r := out.Result
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "instance\t%s (%d nodes, %d edges, %d -> %d, R=%g)\n",
		in.Name, in.Graph.N(), in.Graph.EdgeCount(), in.Source, in.Target, in.Budget)
	fmt.Fprintf(tw, "path\t%s\n", formatPath(r.Best.Path))
	if r.Best.ReachesTarget {
		fmt.Fprintf(tw, "cost\t%g\n", r.Best.Cost)
		fmt.Fprintf(tw, "resource\t%g / %g\n", r.Best.Resource, in.Budget)
	} else {
		fmt.Fprintf(tw, "cost\t-\n")
		fmt.Fprintf(tw, "resource\t-\n")
	}
	if out.Status != "" {
		fmt.Fprintf(tw, "status\t%s\n", out.Status)
	}
	fmt.Fprintf(tw, "initial\t%s (cost %g)\n", formatPath(r.Initial.Path), r.Initial.Cost)
	fmt.Fprintf(tw, "iterations\t%d (steps %d, accepted %d, worse %d, improvements %d)\n",
		r.Iterations, r.TemperatureSteps, r.Accepted, r.AcceptedWorse, r.Improvements)
	fmt.Fprintf(tw, "stop\t%s at T=%.4g after %s\n", r.Stop, r.FinalTemperature, r.Elapsed)
	if b := out.Bounds; b != nil {
		if b.Reachable {
			fmt.Fprintf(tw, "bounds\tcost >= %g, min resource %g (feasible=%t, optimal=%t)\n",
				b.MinCost, b.MinResource, b.Feasible, b.Optimal)
		} else {
			fmt.Fprintf(tw, "bounds\ttarget unreachable\n")
		}
	}

	return tw.Flush()
}

func formatPath(p []int) string {
	if len(p) == 0 {
		return "-"
	}
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprint(v)
	}

	return strings.Join(parts, " -> ")
}
