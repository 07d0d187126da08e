package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// setupLogging installs the default slog logger. Diagnostics go to w (stderr
// in normal use); user-facing progress is written to the command's output.
func setupLogging(w io.Writer, debug bool, format string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "", "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
