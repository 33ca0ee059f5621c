package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rcsp/internal/config"
	"github.com/katalvlaran/rcsp/sa"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rcsp.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func solverFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	config.AddLogFlags(fs)
	config.AddSolverFlags(fs)
	fs.Bool("json", false, "unbound flag")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, "")
	require.NoError(t, err)

	d := sa.DefaultOptions()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, d.CoolingRate, cfg.Solver.CoolingRate)
	assert.Equal(t, d.MaxIterations, cfg.Solver.MaxIterations)
	assert.Equal(t, d.Plateau, cfg.Solver.Plateau)
	assert.Equal(t, 1, cfg.Solver.Starts)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.SolveTimeout)
	assert.Equal(t, "backbone", cfg.Generate.Kind)
	assert.Zero(t, cfg.Server.MaxNodes)
}

func TestLoad_Layering(t *testing.T) {
	path := writeTOML(t, `
[solver]
seed = 11
max_iterations = 1234
time_limit = "2s"

[log]
level = "debug"
`)
	t.Setenv("RCSP_SOLVER_MAX_ITERATIONS", "999")
	t.Setenv("RCSP_SOLVER_PLATEAU", "7")

	// file only
	cfg, err := config.Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Solver.Seed)
	assert.Equal(t, 2*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	// env beats file
	assert.Equal(t, 999, cfg.Solver.MaxIterations)
	assert.Equal(t, 7, cfg.Solver.Plateau)

	// explicit flags beat env; untouched flags do not override
	cfg, err = config.Load(solverFlags(t, "--iterations=50", "--time-limit=250ms", "--json"), path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, 250*time.Millisecond, cfg.Solver.TimeLimit)
	assert.Equal(t, 7, cfg.Solver.Plateau)
	assert.Equal(t, int64(11), cfg.Solver.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(nil, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = config.Load(nil, writeTOML(t, "[solver\n"))
	require.Error(t, err)

	_, err = config.Load(nil, writeTOML(t, "[log]\nlevel = \"chatty\"\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	t.Setenv("RCSP_SOLVER_STARTS", "0")
	_, err = config.Load(nil, "")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfig_SolverOptionsAndLogger(t *testing.T) {
	cfg, err := config.Load(solverFlags(t, "--seed=3", "--alpha=0.9", "--log-format=json"), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	lg, err := cfg.Logger(&buf)
	require.NoError(t, err)
	lg.Info("ping")
	assert.Contains(t, buf.String(), `"msg":"ping"`)

	opt := cfg.SolverOptions(lg)
	assert.Equal(t, int64(3), opt.Seed)
	assert.Equal(t, 0.9, opt.CoolingRate)
	assert.Same(t, lg, opt.Logger)

	_, err = sa.New(sa.Problem{}, opt)
	require.ErrorIs(t, err, sa.ErrNilGraph, "options themselves are valid")
}
