// Package logging builds the application logger. Output always goes to a
// rotating file because the terminal belongs to the TUI.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where and how much to log.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New returns a JSON logger writing to a lumberjack-rotated file, plus the
// closer for that file. An empty File disables logging.
func New(opts Options) (zerolog.Logger, io.Closer) {
	if opts.File == "" {
		return zerolog.Nop(), nopCloser{}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	return NewWithWriter(w, level), w
}

// NewWithWriter returns a JSON logger at level writing to w.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "qviz").Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
