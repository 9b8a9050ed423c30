package logger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dando385/esplora-cli/internal/config"
)

// New builds an AppLogger writing to out. Results go to stdout, so callers
// pass stderr here.
func New(cfg config.LogConfig, out io.Writer) (AppLogger, error) {
	level, err := toSlogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case config.LogFormatText, "":
		handler = slog.NewTextHandler(out, opts)
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("logger setup failed: unsupported format %q", cfg.Format)
	}

	return &slogAdapter{adaptee: slog.New(handler)}, nil
}

// Nop discards everything. Used by tests and as a nil fallback.
func Nop() AppLogger {
	return &slogAdapter{adaptee: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func toSlogLevel(level config.LogLevel) (slog.Level, error) {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn, "":
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported level %q", level)
	}
}

type slogAdapter struct {
	adaptee *slog.Logger
}

func (s *slogAdapter) Debug(msg string, args ...any) { s.adaptee.Debug(msg, args...) }
func (s *slogAdapter) Info(msg string, args ...any)  { s.adaptee.Info(msg, args...) }
func (s *slogAdapter) Warn(msg string, args ...any)  { s.adaptee.Warn(msg, args...) }
func (s *slogAdapter) Error(msg string, args ...any) { s.adaptee.Error(msg, args...) }

func (s *slogAdapter) With(args ...any) AppLogger {
	return &slogAdapter{adaptee: s.adaptee.With(args...)}
}
