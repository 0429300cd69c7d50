package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

var (
	logFile *os.File
	mu      sync.Mutex

	current atomic.Pointer[logiface.Logger[logiface.Event]]
)

// New returns a JSON-lines logger writing to w at the given level.
func New(w io.Writer, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	).Logger()
}

// Init opens path for appending and installs a logger writing to it.
// If path is empty, uses "scene-debug.log" in the current directory.
func Init(path string, level logiface.Level) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = "scene-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	current.Store(New(f, level))
	return nil
}

// SetLogger installs l as the package logger. nil disables logging.
func SetLogger(l *logiface.Logger[logiface.Event]) {
	current.Store(l)
}

// Logger returns the package logger, which may be nil.
func Logger() *logiface.Logger[logiface.Event] {
	return current.Load()
}

// Close disables logging and closes the file opened by Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	current.Store(nil)
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Log writes a formatted debug message.
func Log(format string, args ...any) {
	Logger().Debug().Logf(format, args...)
}

// ParseLevel maps a level keyword ("debug", "info", "warning"...) to a level.
func ParseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return logiface.LevelInformational, nil
	case "off", "disabled", "none":
		return logiface.LevelDisabled, nil
	case "err", "error":
		return logiface.LevelError, nil
	case "warn", "warning":
		return logiface.LevelWarning, nil
	case "notice":
		return logiface.LevelNotice, nil
	case "debug":
		return logiface.LevelDebug, nil
	case "trace":
		return logiface.LevelTrace, nil
	default:
		return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}
