package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/generator"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/internal/config"
)

var generateCommand = command{
	summary: "write random instances (one of --nodes/--edges, or the standard suite)",
	usage:   "[flags]",
	flags: func(fs *pflag.FlagSet) {
		config.AddGenerateFlags(fs)
	},
	run: runGenerate,
}

func runGenerate(_ context.Context, e *env, args []string) error {
	if len(args) != 0 {
		return usagef("generate: unexpected arguments %v", args)
	}
	g := e.cfg.Generate
	kind, err := generator.ParseKind(g.Kind)
	if err != nil {
		return usagef("generate: %v", err)
	}

	presets := generator.StandardSuite()
	if g.Nodes > 0 || g.Edges > 0 {
		presets = []generator.Preset{{
			Name:  fmt.Sprintf("%s_%d_%d", kind, g.Nodes, g.Edges),
			Nodes: g.Nodes,
			Edges: g.Edges,
		}}
	}
	ins, err := generator.Generate(kind, presets, g.Seed)
	if err != nil {
		return err
	}

	for _, in := range ins {
		path := filepath.Join(g.Dir, in.Name+".txt")
		if err = instance.Save(path, in); err != nil {
			return err
		}
		e.log.Info("instance written", "path", path, "nodes", in.Graph.N(), "edges", in.Graph.EdgeCount(), "budget", in.Budget)
		fmt.Fprintln(e.stdout, path)
	}

	return nil
}
