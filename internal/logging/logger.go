// Package logging builds the process logger: a compact console format for
// interactive use or JSON for machines, plus request-ID plumbing for the
// HTTP server.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat indicates a format other than text or json.
var ErrUnknownFormat = errors.New("logging: unknown format")

// ErrUnknownLevel indicates an unparsable level name.
var ErrUnknownLevel = errors.New("logging: unknown level")

// New returns a logger writing to w at level in the given format.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.New(NewCompactHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// contextKey is a type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "requestID"

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// FromContext returns lg annotated with the request ID carried by ctx, if any.
func FromContext(ctx context.Context, lg *slog.Logger) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		return lg.With("requestID", id)
	}
	return lg
}
