package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/germanamz/drsarcastic/pkg/appdir"
)

// openLogger creates a text logger that appends to the app's log file. The
// terminal belongs to the UI, so nothing is logged to stdout or stderr.
func openLogger(d appdir.Dir, level string) (*slog.Logger, func() error, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	if err := appdir.EnsureStructure(d); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(d.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))

	return log, f.Close, nil
}
