// Package instance reads and writes RCSP instances in the plain-text format
//
//	N M SOURCE TARGET R
//	U V COST RESOURCE        (exactly M lines)
//
// Tokens are whitespace-separated; numbers use '.' as decimal separator
// regardless of locale. Blank lines and lines starting with '#' are ignored.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/rcsp/graph"
	"github.com/katalvlaran/rcsp/sa"
)

var (
	// ErrHeader indicates a missing or malformed header line.
	ErrHeader = errors.New("instance: malformed header")

	// ErrSyntax indicates a malformed edge line.
	ErrSyntax = errors.New("instance: malformed edge line")

	// ErrEdgeCount indicates that the number of edge lines differs from M.
	ErrEdgeCount = errors.New("instance: edge count mismatch")

	// ErrNilInstance indicates a nil instance or graph passed to a writer.
	ErrNilInstance = errors.New("instance: nil instance")
)

// Instance is a parsed problem: a graph, its endpoints and the budget.
type Instance struct {
	// Name is a display label (file base name for Load).
	Name   string
	Graph  *graph.Graph
	Source int
	Target int
	Budget float64
}

// Problem returns the solver view of the instance.
func (in *Instance) Problem() sa.Problem {
	return sa.Problem{Graph: in.Graph, Source: in.Source, Target: in.Target, Budget: in.Budget}
}

// DefaultMaxNodes caps the header's N when Read gets no WithMaxNodes option.
// The graph allocates one adjacency slot per node before any edge is read.
const DefaultMaxNodes = 1 << 22

// ReadOption configures Read.
type ReadOption func(*readConfig)

type readConfig struct {
	maxNodes int
}

// WithMaxNodes rejects headers declaring more than n nodes (n ≤ 0 keeps the
// default).
func WithMaxNodes(n int) ReadOption {
	return func(c *readConfig) {
		if n > 0 {
			c.maxNodes = n
		}
	}
}

// Read parses one instance from r. Errors carry the 1-based line number and
// wrap ErrHeader, ErrSyntax, ErrEdgeCount or the graph sentinels
// (graph.ErrOutOfRange, graph.ErrNegativeWeight, ...). A header with more
// than DefaultMaxNodes nodes (or the WithMaxNodes limit) is ErrHeader.
func Read(r io.Reader, opts ...ReadOption) (*Instance, error) {
	cfg := readConfig{maxNodes: DefaultMaxNodes}
	for _, o := range opts {
		o(&cfg)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0

	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			return strings.Fields(text), true
		}
		return nil, false
	}

	head, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("instance: read: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrHeader)
	}
	in, m, err := parseHeader(head, cfg.maxNodes)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	for i := 0; i < m; i++ {
		fields, ok := next()
		if !ok {
			if err = sc.Err(); err != nil {
				return nil, fmt.Errorf("instance: read: %w", err)
			}
			return nil, fmt.Errorf("%w: got %d edge lines, header declares %d", ErrEdgeCount, i, m)
		}
		u, v, cost, res, err := parseEdge(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err = in.Graph.AddEdge(u, v, cost, res); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if _, extra := next(); extra {
		return nil, fmt.Errorf("line %d: %w: more than %d edge lines", line, ErrEdgeCount, m)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("instance: read: %w", err)
	}

	return in, nil
}

func parseHeader(f []string, maxNodes int) (*Instance, int, error) {
	if len(f) != 5 {
		return nil, 0, fmt.Errorf("%w: want 5 fields (N M SOURCE TARGET R), got %d", ErrHeader, len(f))
	}
	n, err1 := strconv.Atoi(f[0])
	m, err2 := strconv.Atoi(f[1])
	s, err3 := strconv.Atoi(f[2])
	t, err4 := strconv.Atoi(f[3])
	budget, err5 := strconv.ParseFloat(f[4], 64)
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrHeader, err)
	}
	if n > maxNodes {
		return nil, 0, fmt.Errorf("%w: %d nodes exceeds limit %d", ErrHeader, n, maxNodes)
	}
	if m < 0 {
		return nil, 0, fmt.Errorf("%w: negative edge count %d", ErrHeader, m)
	}
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return nil, 0, fmt.Errorf("%w: budget %v", ErrHeader, budget)
	}

	g, err := graph.New(n)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrHeader, err)
	}
	if !g.Contains(s) || !g.Contains(t) {
		return nil, 0, fmt.Errorf("%w: source=%d target=%d n=%d", graph.ErrOutOfRange, s, t, n)
	}

	return &Instance{Graph: g, Source: s, Target: t, Budget: budget}, m, nil
}

func parseEdge(f []string) (u, v int, cost, res float64, err error) {
	if len(f) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: want 4 fields (U V COST RESOURCE), got %d", ErrSyntax, len(f))
	}
	var e1, e2, e3, e4 error
	u, e1 = strconv.Atoi(f[0])
	v, e2 = strconv.Atoi(f[1])
	cost, e3 = strconv.ParseFloat(f[2], 64)
	res, e4 = strconv.ParseFloat(f[3], 64)
	if err = errors.Join(e1, e2, e3, e4); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	return u, v, cost, res, nil
}

// Load reads the instance stored at path and names it after the file.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	defer f.Close()

	in, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	in.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return in, nil
}

// Write emits in in the text format. Weights use the shortest decimal
// representation that parses back to the same float64.
func Write(w io.Writer, in *Instance) error {
	if in == nil || in.Graph == nil {
		return ErrNilInstance
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d %s\n",
		in.Graph.N(), in.Graph.EdgeCount(), in.Source, in.Target, formatFloat(in.Budget))
	in.Graph.Edges(func(u int, e graph.Edge) bool {
		fmt.Fprintf(bw, "%d %d %s %s\n", u, e.To, formatFloat(e.Cost), formatFloat(e.Resource))
		return true
	})

	return bw.Flush()
}

// Save writes in to path, creating parent directories as needed.
func Save(path string, in *Instance) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("instance: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instance: %w", err)
	}
	if err = Write(f, in); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
