package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	// Path is the log file. It is truncated on open.
	Path   string
	Debug  bool
	Format string // text|json
}

var (
	mu           sync.RWMutex
	global       = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile      *os.File
	sink         io.Writer = io.Discard
	logPath      string
	initedAt     time.Time
	invocationID string
)

func Setup(cfg Config) (func() error, error) {
	path := filepath.Clean(cfg.Path)
	if cfg.Path == "" {
		setDiscard()
		return nil, errors.New("log path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		setDiscard()
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		setDiscard()
		return nil, err
	}

	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	// The slog handler and the raw stderr copy share one file.
	w := &lockedWriter{w: f}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	now := time.Now()
	id := uuid.NewString()
	if _, err := fmt.Fprintf(w, "vexmason build log\nstarted: %s\ninvocation: %s\n\n", now.Format(time.RFC3339), id); err != nil {
		_ = f.Close()
		setDiscard()
		return nil, err
	}

	l := slog.New(h)

	mu.Lock()
	global = l
	logFile = f
	sink = w
	logPath = path
	initedAt = now.UTC()
	invocationID = id
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		sink = io.Discard
		logPath = ""
		initedAt = time.Time{}
		invocationID = ""
		global = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return cerr
	}

	return cleanup, nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Writer returns the raw log sink, for byte-for-byte copies of child output.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return sink
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func InitTime() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return initedAt
}

func InvocationID() string {
	mu.RLock()
	defer mu.RUnlock()
	return invocationID
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile = nil
	sink = io.Discard
	logPath = ""
	initedAt = time.Time{}
	invocationID = ""
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil || logPath == "" {
		return errors.New("logger not initialized")
	}
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
