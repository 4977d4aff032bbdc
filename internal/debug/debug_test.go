package debug

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLogPath(t *testing.T) string {
	t.Helper()
	resetForTest()
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, LogDirName, LogFileName)
	origGetLogPath := getLogPath
	getLogPath = func() (string, error) {
		return logPath, nil
	}
	t.Cleanup(func() {
		getLogPath = origGetLogPath
		Close()
		resetForTest()
	})
	return logPath
}

func TestInitDisabled(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if Enabled() {
		t.Error("Enabled() should return false when initialized with false")
	}

	Log("test message")
	Logf("test %s", "formatted")
}

func TestInitEnabledWritesFile(t *testing.T) {
	logPath := useTempLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	if !Enabled() {
		t.Error("Enabled() should return true when initialized with true")
	}

	Log("theme applied")
	Logf("theme: %s -> %s", "light", "dark")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"prism debug log started", "theme applied", "theme: light -> dark"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
}

func TestInitTruncatesExistingLog(t *testing.T) {
	logPath := useTempLogPath(t)

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("stale line\n"), 0o600); err != nil {
		t.Fatalf("write stale log: %v", err)
	}

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "stale line") {
		t.Error("log file should have been truncated")
	}
}

func TestCloseIsRepeatable(t *testing.T) {
	useTempLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Close()
	Close()
	Close()
}

func TestInitFailureLeavesTracingOff(t *testing.T) {
	useTempLogPath(t)
	getLogPath = func() (string, error) { return "", errors.New("no home") }

	if err := Init(true); err == nil {
		t.Fatal("expected Init to fail without a log path")
	}
	if Enabled() {
		t.Fatal("tracing should stay off when the log file cannot be opened")
	}
	Logf("dropped %d", 1)
}

func TestLogAfterCloseIsDropped(t *testing.T) {
	logPath := useTempLogPath(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Logf("theme: applied %s", "dark")
	Close()
	Logf("theme: applied %s", "light")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "applied dark") {
		t.Fatalf("expected trace before Close, got %q", data)
	}
	if strings.Contains(string(data), "applied light") {
		t.Fatalf("trace after Close should be dropped, got %q", data)
	}
}

func TestAttachCapturesOutput(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	var buf bytes.Buffer
	Attach(&buf)
	Logf("resource %s", "shared-styles")

	if !strings.Contains(buf.String(), "resource shared-styles") {
		t.Fatalf("expected attached writer to receive log, got %q", buf.String())
	}

	Attach(nil)
	if Enabled() {
		t.Fatal("Attach(nil) should disable logging")
	}
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Errorf("GetLogPath() = %q, want suffix %q", path, filepath.Join(LogDirName, LogFileName))
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = false
	logger = nil
}
