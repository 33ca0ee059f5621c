package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/internal/config"
	"github.com/katalvlaran/rcsp/internal/server"
)

var serveCommand = command{
	summary: "serve the solver over HTTP",
	usage:   "[flags]",
	flags: func(fs *pflag.FlagSet) {
		config.AddSolverFlags(fs)
		config.AddServerFlags(fs)
	},
	run: runServe,
}

func runServe(ctx context.Context, e *env, args []string) error {
	if len(args) != 0 {
		return usagef("serve: unexpected arguments %v", args)
	}
	c := e.cfg.Server
	srv := server.New(server.Options{
		MaxBodyBytes: c.MaxBodyBytes,
		SolveTimeout: c.SolveTimeout,
		MaxStarts:    c.MaxStarts,
		MaxNodes:     c.MaxNodes,
		Solver:       e.cfg.SolverOptions(nil),
		Logger:       e.log,
	})

	return srv.Run(ctx, c.Addr)
}
