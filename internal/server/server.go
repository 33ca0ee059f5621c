// Package server exposes the solver over HTTP.
//
//	GET  /api/health    liveness and build info
//	POST /api/solve     body: instance text; query: seed, time_limit, starts
//	POST /api/bounds    body: instance text; Dijkstra reference bounds
//	POST /api/generate  query: kind, nodes, edges, seed; returns instance text
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/rcsp/instance"
	"github.com/katalvlaran/rcsp/internal/logging"
	"github.com/katalvlaran/rcsp/sa"
)

// Options configures the server.
type Options struct {
	// MaxBodyBytes caps request bodies (instances).
	MaxBodyBytes int64
	// SolveTimeout bounds each solve request; 0 disables.
	SolveTimeout time.Duration
	// MaxStarts caps the starts query parameter.
	MaxStarts int
	// MaxNodes caps the node count an instance header may declare; 0 derives
	// it from MaxBodyBytes (see nodeLimit).
	MaxNodes int
	// Solver is the base configuration; query parameters override Seed and
	// TimeLimit.
	Solver sa.Options
	// Logger receives request and solve logs; nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns conservative limits and the default solver.
func DefaultOptions() Options {
	return Options{
		MaxBodyBytes: 8 << 20,
		SolveTimeout: 30 * time.Second,
		MaxStarts:    16,
		Solver:       sa.DefaultOptions(),
	}
}

// Server represents the web server
type Server struct {
	router  *mux.Router
	opts    Options
	log     *slog.Logger
	started time.Time
}

// New creates a server with all routes registered.
func New(opts Options) *Server {
	lg := opts.Logger
	if lg == nil {
		lg = slog.New(slog.DiscardHandler)
	}
	if opts.MaxStarts < 1 {
		opts.MaxStarts = 1
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = nodeLimit(opts.MaxBodyBytes)
	}
	s := &Server{
		router:  mux.NewRouter(),
		opts:    opts,
		log:     lg,
		started: time.Now(),
	}
	s.setupRoutes()

	return s
}

// minNodeLimit keeps small body caps usable for small instances.
const minNodeLimit = 1024

// nodeLimit bounds the header's N by the body size: each node costs an
// adjacency slot (24 bytes) whether or not an edge line mentions it, so one
// node per 8 body bytes keeps the allocation within a few times the body.
func nodeLimit(maxBody int64) int {
	n := maxBody / 8
	if n < minNodeLimit {
		n = minNodeLimit
	}
	if n > instance.DefaultMaxNodes {
		n = instance.DefaultMaxNodes
	}

	return int(n)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware(s.log))

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/solve", s.handleSolve).Methods(http.MethodPost)
	api.HandleFunc("/bounds", s.handleBounds).Methods(http.MethodPost)
	api.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")

	return nil
}
