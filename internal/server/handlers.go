package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/rcsp/dijkstra"
	"github.com/katalvlaran/rcsp/generator"
	"github.com/katalvlaran/rcsp/graph"
	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/internal/logging"
	"github.com/katalvlaran/rcsp/sa"
)

// errBadQuery marks malformed query parameters.
var errBadQuery = errors.New("bad query parameter")

// InstanceInfo summarises a parsed instance in responses.
type InstanceInfo struct {
	Nodes  int     `json:"nodes"`
	Edges  int     `json:"edges"`
	Source int     `json:"source"`
	Target int     `json:"target"`
	Budget float64 `json:"budget"`
}

// SolveResponse is the body of a successful POST /api/solve.
type SolveResponse struct {
	ID        uuid.UUID    `json:"id"`
	Instance  InstanceInfo `json:"instance"`
	Seed      int64        `json:"seed"`
	Starts    int          `json:"starts"`
	Result    sa.Result    `json:"result"`
	ElapsedMS float64      `json:"elapsed_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(s.started).Round(time.Second).String(),
		"go":         runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInstance(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opt := s.opts.Solver
	opt.Logger = logging.FromContext(r.Context(), s.log)
	opt.Hook = nil
	opt.Rand = nil

	var err error
	if opt.Seed, err = queryInt64(q.Get("seed"), opt.Seed); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if v := q.Get("time_limit"); v != "" {
		if opt.TimeLimit, err = time.ParseDuration(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: time_limit: %v", errBadQuery, err))
			return
		}
	}
	starts, err := queryInt64(q.Get("starts"), 1)
	if err != nil || starts < 1 || starts > int64(s.opts.MaxStarts) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: starts must lie in [1, %d]", errBadQuery, s.opts.MaxStarts))
		return
	}

	ctx := r.Context()
	if s.opts.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SolveTimeout)
		defer cancel()
	}

	start := time.Now()
	best, _, err := sa.SolveMulti(ctx, in.Problem(), opt, int(starts))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		ID:        uuid.New(),
		Instance:  info(in),
		Seed:      opt.Seed,
		Starts:    int(starts),
		Result:    best,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInstance(w, r)
	if !ok {
		return
	}
	b, err := dijkstra.ComputeBounds(in.Graph, in.Source, in.Target, in.Budget)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Instance InstanceInfo    `json:"instance"`
		Bounds   dijkstra.Bounds `json:"bounds"`
	}{info(in), b})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := generator.ParseKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err1 := queryInt64(q.Get("nodes"), 20)
	m, err2 := queryInt64(q.Get("edges"), 50)
	seed, err3 := queryInt64(q.Get("seed"), 1)
	if err = errors.Join(err1, err2, err3); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// bound the output size like an uploaded body
	if n*16+m*48 > s.opts.MaxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: instance too large", errBadQuery))
		return
	}

	in, err := generator.Build(kind, int(n), int(m), generator.WithSeed(seed))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err = instance.Write(&buf, in); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// readInstance parses the request body, writing the error response itself
// when parsing fails.
func (s *Server) readInstance(w http.ResponseWriter, r *http.Request) (*instance.Instance, bool) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	in, err := instance.Read(body, instance.WithMaxNodes(s.opts.MaxNodes))
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}
	in.Name = "request"

	return in, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, instance.ErrHeader),
		errors.Is(err, instance.ErrSyntax),
		errors.Is(err, instance.ErrEdgeCount),
		errors.Is(err, graph.ErrOutOfRange),
		errors.Is(err, graph.ErrTooFewNodes),
		errors.Is(err, graph.ErrNegativeWeight),
		errors.Is(err, graph.ErrBadWeight),
		errors.Is(err, sa.ErrBadBudget),
		errors.Is(err, sa.ErrNodeOutOfRange),
		errors.Is(err, sa.ErrBadTemperature),
		errors.Is(err, sa.ErrBadCoolingRate),
		errors.Is(err, sa.ErrBadLimit),
		errors.Is(err, sa.ErrBadPenalty),
		errors.Is(err, dijkstra.ErrBadBudget),
		errors.Is(err, dijkstra.ErrVertexNotFound),
		errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryInt64(v string, def int64) (int64, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", errBadQuery, v)
	}
	return n, nil
}

func info(in *instance.Instance) InstanceInfo {
	return InstanceInfo{
		Nodes:  in.Graph.N(),
		Edges:  in.Graph.EdgeCount(),
		Source: in.Source,
		Target: in.Target,
		Budget: in.Budget,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
