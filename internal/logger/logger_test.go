package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRunEvents(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithRun("run-123")

	l.RunStarted("/src", "/dest", "builtin", 3)
	l.PageConverted("/src/a.txt", "/dest/a.md", "A")
	l.ConversionError("/src/b.txt", "/dest/b.md", errors.New("boom"))
	l.RunCompleted(2, 1, 1500*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"conversion started",
		"page converted",
		"conversion failed",
		"conversion completed",
		"run_id=run-123",
		"files_converted=2",
		"boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestDebugEventsRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.Skipped("a.txt", "dry run")
	l.ToolOutput("pandoc", "a.txt", "warning: something")
	if buf.Len() != 0 {
		t.Errorf("debug entries written at info level: %s", buf.String())
	}

	l = NewWithLevel(&buf, log.DebugLevel)
	l.ToolOutput("pandoc", "a.txt", "")
	if buf.Len() != 0 {
		t.Errorf("empty tool output should not be logged: %s", buf.String())
	}

	l.ToolOutput("pandoc", "a.txt", "warning: something")
	if !strings.Contains(buf.String(), "external tool output") {
		t.Errorf("expected tool output entry, got: %s", buf.String())
	}
}

func TestMultiLoggerWritesEverywhere(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(log.InfoLevel, &a, &b)

	l.Skipped("a.txt", "dry run")
	l.Error("write failed", "page", "a.md")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "write failed") {
			t.Errorf("%s writer missing entry: %s", name, buf.String())
		}
		if strings.Contains(buf.String(), "dry run") {
			t.Errorf("%s writer got a debug entry at info level: %s", name, buf.String())
		}
	}
}

func TestFileLoggerMirrorsToExtraWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dokumd.log")
	var mirror bytes.Buffer

	l, cleanup, err := NewFileLogger(path, log.InfoLevel, &mirror)
	if err != nil {
		t.Fatalf("NewFileLogger returned error: %v", err)
	}
	l.Info("conversion started", "pages", 3)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "conversion started") {
		t.Errorf("log file missing entry: %s", data)
	}
	if !strings.Contains(mirror.String(), "conversion started") {
		t.Errorf("mirror writer missing entry: %s", mirror.String())
	}
}
