package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// setupLogging installs the default slog logger and returns a function that
// closes the log file, if any. While the editor owns the terminal only
// warnings reach stderr unless debugging was asked for.
func setupLogging(cfg Config, interactive bool) (func() error, error) {
	level := slog.LevelInfo
	if interactive {
		level = slog.LevelWarn
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		slog.SetDefault(slog.New(newFileHandler(f, level)))
		return f.Close, nil
	}

	color := isatty.IsTerminal(os.Stderr.Fd())
	slog.SetDefault(slog.New(newConsoleHandler(os.Stderr, level, color)))
	return func() error { return nil }, nil
}

func newConsoleHandler(w io.Writer, level slog.Level, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	})
}

func newFileHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
