// Package pandoc runs the pandoc CLI as an alternate DokuWiki converter.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for pandoc failures.
var (
	ErrCommandFailed = errors.New("pandoc command failed")
	ErrNotFound      = errors.New("pandoc binary not found")
)

const (
	inFormat  = "dokuwiki"
	outFormat = "markdown"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Result is what pandoc printed for one source file
type Result struct {
	Markdown string
	Stderr   string
}

// Runner converts DokuWiki files by invoking pandoc.
type Runner struct {
	Binary string
	Args   []string
	Runner CommandRunner
}

// New creates a Runner using a real command runner.
func New(binary string, args []string) *Runner {
	if binary == "" {
		binary = "pandoc"
	}
	return &Runner{Binary: binary, Args: args, Runner: &ExecRunner{}}
}

// CommandLine returns the arguments passed to pandoc for srcPath.
// Output goes to stdout so the caller controls how the file is written.
func (r *Runner) CommandLine(srcPath string) []string {
	args := append([]string(nil), r.Args...)
	return append(args, "-f", inFormat, "-t", outFormat, srcPath)
}

// ConvertFile runs pandoc on srcPath and returns the Markdown it printed.
// A nonzero exit returns ErrCommandFailed with stderr in the message.
func (r *Runner) ConvertFile(ctx context.Context, srcPath string) (*Result, error) {
	stdout, stderr, err := r.Runner.Run(ctx, r.Binary, r.CommandLine(srcPath)...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.Binary)
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrCommandFailed, msg)
	}

	return &Result{Markdown: stdout, Stderr: stderr}, nil
}
