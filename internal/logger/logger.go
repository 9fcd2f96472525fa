// Package logger builds the process logger from configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type Options struct {
	Level  string // debug, info, warn or error
	File   string // append logs to file; "-" or "" means the fallback writer
	Format string // text or json
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger writing to options.File, or to fallback when no file
// is set. A nil fallback discards output. Invalid options are reset and
// reported as a warning on the resulting logger. The returned func closes
// the log file, if one was opened.
func New(options *Options, fallback io.Writer) (*slog.Logger, func() error) {
	logger, closeFn := newLogger(options, fallback)
	return logger.With("session", uuid.New().String()), closeFn
}

func nopClose() error { return nil }

func newLogger(options *Options, fallback io.Writer) (*slog.Logger, func() error) {
	level, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger, closeFn := newLogger(options, fallback)
		logger.Warn("could not parse logger level")
		return logger, closeFn
	}

	// Options are settled before the file is opened so a retry never opens
	// it twice.
	switch strings.ToLower(options.Format) {
	case "json", "text", "":
	default:
		options.Format = "text"
		logger, closeFn := newLogger(options, fallback)
		logger.Warn("could not parse logger format")
		return logger, closeFn
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	closeFn := nopClose
	switch options.File {
	case "", "-":
		if fallback == nil {
			return slog.New(slog.DiscardHandler), nopClose
		}
		output = fallback
	case os.DevNull:
		return slog.New(slog.DiscardHandler), nopClose
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger, closeFn := newLogger(options, fallback)
			logger.Warn("could not open logger file", "err", err)
			return logger, closeFn
		}
		output, closeFn = f, f.Close
	}

	if strings.EqualFold(options.Format, "json") {
		return slog.New(slog.NewJSONHandler(output, &opts)), closeFn
	}
	return slog.New(slog.NewTextHandler(output, &opts)), closeFn
}
