package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where log records go and which are kept.
type Config struct {
	// Level is one of debug, info, warn or error.
	Level string
	// File, when set, receives the records instead of the console. The file
	// is rotated once it grows past MaxSizeMB.
	File      string
	MaxSizeMB int
	// NoColor disables ANSI colors on the console.
	NoColor bool
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewHandler returns a tint handler writing to w.
func NewHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	})
}

// Setup installs the logger described by cfg as the slog default and routes
// the standard log package through it. Console records go to stderr. The
// returned closer releases the log file, if any.
func Setup(cfg Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		var err error
		if level, err = ParseLevel(cfg.Level); err != nil {
			return nil, nil, err
		}
	}

	var (
		w       io.Writer = os.Stderr
		closer  io.Closer = nopCloser{}
		noColor           = cfg.NoColor
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log folder: %w", err)
		}
		lumber := &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMB,
			Compress: true,
		}
		w, closer, noColor = lumber, lumber, true
	}

	logger := slog.New(NewHandler(w, level, noColor))
	slog.SetDefault(logger)

	// overwrite standard log so it's always redirected to slog
	lw := &slogWriter{logger: logger}
	log.SetFlags(0)
	log.SetOutput(lw)
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")
	switch {
	case strings.HasPrefix(msg, "ERROR "):
		w.logger.Error(msg[6:])
	case strings.HasPrefix(msg, "WARN "):
		w.logger.Warn(msg[5:])
	case strings.HasPrefix(msg, "INFO "):
		w.logger.Info(msg[5:])
	default:
		w.logger.Debug(msg)
	}
	return len(p), nil
}
