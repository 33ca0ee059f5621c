// Command rcsp solves resource-constrained shortest path instances by
// simulated annealing.
//
//	rcsp solve [flags] INSTANCE      solve one instance file ("-" reads stdin)
//	rcsp bench [flags] [INSTANCE...] benchmark files, or the generated suite
//	rcsp generate [flags]            write random instances
//	rcsp serve [flags]               run the HTTP API
//
// Every command accepts --config FILE (default rcsp.toml when present);
// RCSP_* environment variables override the file, flags override both.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rcsp/internal/config"
)

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks command-line misuse; main exits with exitUsage.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// command is one subcommand: its flags and its body.
type command struct {
	summary string
	usage   string
	flags   func(fs *pflag.FlagSet)
	run     func(ctx context.Context, env *env, args []string) error
}

// env is what every command body receives after flags and config are
// resolved.
type env struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	fs     *pflag.FlagSet
	log    *slog.Logger
}

var commands = map[string]command{
	"solve":    solveCommand,
	"bench":    benchCommand,
	"generate": generateCommand,
	"serve":    serveCommand,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	os.Exit(exitCode(err, os.Stderr))
}

func exitCode(err error, stderr io.Writer) int {
	var ue *usageError
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "rcsp: %v\nRun 'rcsp help' for usage.\n", err)
		return exitUsage
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "rcsp: interrupted")
		return exitError
	default:
		fmt.Fprintf(stderr, "rcsp: %v\n", err)
		return exitError
	}
}

// run dispatches args to a subcommand.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usagef("missing command")
	}
	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		return usagef("unknown command %q", name)
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: rcsp %s %s\n\n%s\n\nflags:\n", name, cmd.usage, cmd.summary)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "TOML config file (default "+config.DefaultFile+" if present)")
	config.AddLogFlags(fs)
	cmd.flags(fs)

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error()}
	}

	cfg, err := config.Load(fs, *configPath)
	if err != nil {
		return err
	}
	lg, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}

	return cmd.run(ctx, &env{stdout: stdout, stderr: stderr, cfg: cfg, fs: fs, log: lg}, fs.Args())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: rcsp <command> [flags]\n\ncommands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-9s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nRun 'rcsp <command> --help' for command flags.")
}
