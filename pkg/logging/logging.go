// Package logging configures structured logging for kittyd.
//
// Terminals get colored output from tint. When stderr is not a terminal
// (containers, log shippers) the same records are written as JSON.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the default slog logger at the given level, writing to
// stderr.
func Setup(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, isTerminal(os.Stderr)))
}

// New builds a logger writing to w. color selects tint over JSON.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	if !color {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
