// Package logging builds the zerolog loggers used by the CLI and the project
// runtime.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level     string    // debug, info, warn, error
	File      string    // log file path; empty disables file output
	Console   io.Writer // console destination; nil disables console output
	Pretty    bool      // human-readable console format
	Redaction bool      // mask API keys and passwords
}

// Logger wraps a zerolog.Logger and the log file it may own.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New creates a logger from cfg. With neither a console nor a file the
// logger discards everything.
func New(cfg Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Console != nil {
		var w io.Writer = cfg.Console
		if cfg.Pretty {
			w = zerolog.ConsoleWriter{Out: cfg.Console, TimeFormat: time.Kitchen}
		}
		writers = append(writers, w)
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		writers = append(writers, file)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}
	if cfg.Redaction {
		writer = NewRedactor().Wrap(writer)
	}

	return &Logger{
		Logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
		file:   file,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Verbose returns the CLI's stderr logger: debug level when verbose is set,
// warnings only otherwise.
func Verbose(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}
