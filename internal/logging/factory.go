package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel normalizes a log level string. Unknown values return
// slog.LevelInfo with an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("invalid log level")
	}
}

// Options controls logger construction. Writer defaults to stderr.
type Options struct {
	Level  string
	Format string // text, json or zap
	Writer io.Writer
}

// New builds a Logger from opts.
func New(opts Options) (Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		return NewSlogLogger(slog.New(h)), nil
	case "json":
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return NewSlogLogger(slog.New(h)), nil
	case "zap":
		return NewZapLogger(newZap(w, level)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

func newZap(w io.Writer, level slog.Level) *zap.Logger {
	zl := zapcore.InfoLevel
	switch {
	case level <= slog.LevelDebug:
		zl = zapcore.DebugLevel
	case level >= slog.LevelError:
		zl = zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		zl = zapcore.WarnLevel
	}

	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zl)
	return zap.New(core)
}
