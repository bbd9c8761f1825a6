package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/dokumd/internal/config"
	"github.com/gerunddev/dokumd/internal/logger"
	"github.com/gerunddev/dokumd/internal/styles"
)

// fail prints an error line and exits
func fail(msg string, err error) {
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg))
	os.Exit(1)
}

// loadConfig loads the config file at path, or the default config file when
// path is empty
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// configFile returns the config path a command works against
func configFile(path string) string {
	if path == "" {
		return config.ConfigPath()
	}
	return path
}

// openLogger returns the run logger. Without a log file only errors reach
// stderr, so the progress display stays readable.
func openLogger(cfg *config.Config, verbose bool) (*logger.Logger, func()) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	if cfg.LogFile == "" {
		if verbose {
			return logger.NewWithLevel(os.Stderr, level), func() {}
		}
		return logger.NewWithLevel(os.Stderr, log.ErrorLevel), func() {}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
		return logger.Discard(), func() {}
	}

	// --verbose with a log file also mirrors entries to stderr
	var extra []io.Writer
	if verbose {
		extra = append(extra, os.Stderr)
	}

	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, extra...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		return logger.Discard(), func() {}
	}
	return l, cleanup
}

// ParseLogFile reads the last N lines from the log file and extracts the
// time and page count of the most recent completed run
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastRun time.Time
	filesConverted := 0

	// Look for most recent "conversion completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "conversion completed") {
			// Format: 2025-11-27 14:11:57 INFO conversion completed
			if len(line) > 19 {
				if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
					lastRun = t
				}
			}

			if idx := strings.Index(line, "files_converted="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "files_converted=%d", &filesConverted) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastRun, filesConverted
}
