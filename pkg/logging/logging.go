// Package logging builds the slog logger shared by the CLI and the parse
// service.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New
type Options struct {
	Level  string    // debug, info, warn or error; empty means info
	Writer io.Writer // text output; nil means stderr
	File   string    // optional JSON log file, appended to
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New returns a logger writing text to opts.Writer and, when opts.File is
// set, JSON lines to that file. The returned close function releases the
// file and is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	level.Set(lvl)

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}
	closer := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
