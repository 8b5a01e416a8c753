// Package logging sets up the zerolog logger. The TUI owns the terminal, so
// log lines always go to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jask/campusboard/internal/config"
)

// New opens (appending) the configured log file and returns a logger writing
// JSON lines to it. Close the returned io.Closer on exit.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "mkdir log dir")
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "open log file")
	}
	return NewWriter(f, level), f, nil
}

// NewWriter builds a logger over an arbitrary writer.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "campusboard").Logger()
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
