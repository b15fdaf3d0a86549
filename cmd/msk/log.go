package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/you-not-fish/msk/internal/config"
)

// newLogger builds the process logger from the log settings.
func newLogger(c config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch c.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q", c.Format)
	}
	return slog.New(h), nil
}
