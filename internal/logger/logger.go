// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileName is the log file created inside Config.Dir.
const FileName = "x12flat.log"

type Config struct {
	// Dir receives the log file. Empty logs to stderr.
	Dir   string
	Debug bool
	// RunID tags every record. Empty generates one.
	RunID string
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile *os.File
	logPath string
	runID   string
)

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

func Setup(cfg Config) (func() error, error) {
	var (
		w    io.Writer = os.Stderr
		f    *os.File
		path string
	)

	if cfg.Dir != "" {
		dir := filepath.Clean(cfg.Dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			setDiscard()
			return nil, err
		}

		path = filepath.Join(dir, FileName)
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			setDiscard()
			return nil, err
		}
		w = f
	}

	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	id := cfg.RunID
	if id == "" {
		id = NewRunID()
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	})

	l := slog.New(h).With("run_id", id)

	mu.Lock()
	global = l
	logFile = f
	logPath = path
	runID = id
	mu.Unlock()

	l.Debug("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		runID = ""
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

// Path returns the log file path, empty when logging to stderr or not set up.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// RunID returns the run identifier attached to every record.
func RunID() string {
	mu.RLock()
	defer mu.RUnlock()
	return runID
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFile = nil
	logPath = ""
	runID = ""
}
