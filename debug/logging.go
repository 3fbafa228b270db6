// Package debug configures the process logger.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, everything goes to stderr and to the file.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type DebugLevel int

const (
	LevelError DebugLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// SlogTrace is the slog level trace records are logged at.
const SlogTrace slog.Level = -8

var levelNames = []string{"error", "warn", "info", "debug", "trace"}

func (l DebugLevel) String() string {
	if l < LevelError || l > LevelTrace {
		return "unknown"
	}
	return levelNames[l]
}

// Slog maps l onto a slog level.
func (l DebugLevel) Slog() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	case LevelTrace:
		return SlogTrace
	default:
		return slog.LevelInfo
	}
}

// ParseLevel accepts the names String returns. The empty string is info.
func ParseLevel(s string) (DebugLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelInfo, nil
	}
	for i, name := range levelNames {
		if s == name {
			return DebugLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LevelNames lists the accepted level names, most severe first.
func LevelNames() []string {
	return append([]string(nil), levelNames...)
}

// MultiHandler sends every record to all of its handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes only the levels pass accepts to h.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// SetupLogger builds the process logger. The returned closers must be
// closed on exit.
func SetupLogger(level, logFile string) (*slog.Logger, []io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if logFile == "" {
		return NewConsoleLogger(lvl, os.Stdout, os.Stderr), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl.Slog(), ReplaceAttr: replaceLevel}
	logger := slog.New(MultiHandler{hs: []slog.Handler{
		slog.NewTextHandler(os.Stderr, opts),
		slog.NewTextHandler(f, opts),
	}})
	return logger, []io.Closer{f}, nil
}

// NewConsoleLogger splits records between out (below error) and errOut.
func NewConsoleLogger(level DebugLevel, out, errOut io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.Slog(), ReplaceAttr: replaceLevel}
	return slog.New(MultiHandler{hs: []slog.Handler{
		LevelFilter{
			pass: func(l slog.Level) bool { return l < slog.LevelError },
			h:    slog.NewTextHandler(out, opts),
		},
		LevelFilter{
			pass: func(l slog.Level) bool { return l >= slog.LevelError },
			h:    slog.NewTextHandler(errOut, opts),
		},
	}})
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == SlogTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}
