// Package debug is prism's trace log. It records how each theme was resolved
// (preference, OS base theme, high-contrast variant), every resource swap and
// ThemeChanged event, appearance detection failures and config reloads.
//
// The UI owns the terminal, so traces go to ~/.prism/debug.log and never to
// stdout. The file is truncated on each launch and only written when --debug
// is passed or `debug: true` is configured.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".prism"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *log.Logger
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init turns tracing on or off for this run. Enabling it truncates the log
// file and writes a start banner; disabling it makes every Log call a no-op.
// A previously opened log file is closed either way.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = false
	logger = log.New(io.Discard, "", 0)
	if !enable {
		return nil
	}

	f, err := openLogFile()
	if err != nil {
		return err
	}
	logFile = f
	enabled = true
	logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logger.Printf("=== prism debug log started at %s ===", time.Now().Format(time.RFC3339))
	return nil
}

// openLogFile creates the log directory and truncates the log file.
func openLogFile() (*os.File, error) {
	logPath, err := getLogPath()
	if err != nil {
		return nil, fmt.Errorf("determine log path: %w", err)
	}
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Attach sends traces to w instead of the log file. A nil w turns tracing off.
func Attach(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = w != nil
	if w == nil {
		logger = log.New(io.Discard, "", 0)
		return
	}
	logger = log.New(w, "", 0)
}

// Close flushes and closes the log file. Tracing stays in its current state
// but writes are dropped until the next Init or Attach.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		logger = log.New(io.Discard, "", 0)
	}
}

// Log writes a trace line in the manner of fmt.Print.
func Log(v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Print(v...)
}

// Logf writes a trace line in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, v...)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns where Init writes the trace log.
func GetLogPath() (string, error) {
	return getLogPath()
}
