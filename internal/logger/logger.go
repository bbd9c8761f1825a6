package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file. Entries are also
// copied to any extra writers.
func NewFileLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(level, append([]io.Writer{f}, extra...)...), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// WithRun returns a logger that tags every entry with the run id
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.With("run_id", runID)}
}

// RunStarted logs the start of a conversion run
func (l *Logger) RunStarted(srcDir, destDir, engine string, files int) {
	l.Info("conversion started",
		"src_dir", srcDir,
		"dest_dir", destDir,
		"engine", engine,
		"files", files)
}

// RunCompleted logs the end of a conversion run
func (l *Logger) RunCompleted(filesProcessed int, errors int, duration time.Duration) {
	l.Info("conversion completed",
		"files_converted", filesProcessed,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// PageConverted logs a successful page conversion
func (l *Logger) PageConverted(source, dest, title string) {
	l.Info("page converted",
		"source", source,
		"dest", dest,
		"title", title)
}

// ConversionError logs a failed page conversion
func (l *Logger) ConversionError(source, dest string, err error) {
	l.Error("conversion failed",
		"source", source,
		"dest", dest,
		"error", err)
}

// ToolOutput logs what an external converter printed
func (l *Logger) ToolOutput(tool, source, stderr string) {
	if stderr == "" {
		return
	}
	l.Debug("external tool output",
		"tool", tool,
		"source", source,
		"stderr", stderr)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(srcDir, destDir string, workers int) {
	l.Debug("config loaded",
		"src_dir", srcDir,
		"dest_dir", destDir,
		"workers", workers)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
