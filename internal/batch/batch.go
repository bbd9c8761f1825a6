package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gerunddev/dokumd/internal/config"
	"github.com/gerunddev/dokumd/internal/logger"
)

// Sentinel errors for page conversion failures.
var (
	ErrRead    = errors.New("failed to read source page")
	ErrConvert = errors.New("failed to convert page")
	ErrWrite   = errors.New("failed to write destination page")
)

// Runner converts every page under the source directory
type Runner struct {
	config *config.Config
	engine Engine
	log    *logger.Logger

	// DryRun converts pages without writing them; output is kept in Result.Outputs
	DryRun bool

	// OnProgress is called after each page, from the converting goroutine
	OnProgress func(Progress)
}

// Progress reports one finished page
type Progress struct {
	Done   int
	Total  int
	Source string
	Dest   string
	Err    error
}

// Result represents the result of a conversion run
type Result struct {
	RunID          string
	FilesProcessed int
	Errors         []error
	Outputs        map[string]string
	StartTime      time.Time
	EndTime        time.Time
}

// NewRunner creates a new runner instance
func NewRunner(cfg *config.Config, engine Engine) *Runner {
	return &Runner{
		config: cfg,
		engine: engine,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger for conversion events
func (r *Runner) SetLogger(l *logger.Logger) {
	r.log = l
}

// Run converts all pages. Per-page failures are collected in Result.Errors
// unless FailFast is configured, in which case the first one stops the run
// and is returned.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Outputs:   make(map[string]string),
		StartTime: time.Now(),
	}
	log := r.log.WithRun(result.RunID)

	files, err := ScanDirectory(r.config.SrcDir, r.config.SrcExt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", r.config.SrcDir, err)
	}

	log.RunStarted(r.config.SrcDir, r.config.DestDir, r.engine.Name(), len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	var mu sync.Mutex
	done := 0

	for _, src := range files {
		src := src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			dst, output, err := r.convertOne(gctx, src, log)

			mu.Lock()
			done++
			if err != nil {
				result.Errors = append(result.Errors, err)
			} else {
				result.FilesProcessed++
				if r.DryRun {
					result.Outputs[dst] = output
				}
			}
			progress := Progress{Done: done, Total: len(files), Source: src, Dest: dst, Err: err}
			mu.Unlock()

			if r.OnProgress != nil {
				r.OnProgress(progress)
			}

			if err != nil && r.config.FailFast {
				return err
			}
			return nil
		})
	}

	err = g.Wait()
	result.EndTime = time.Now()
	log.RunCompleted(result.FilesProcessed, len(result.Errors), result.EndTime.Sub(result.StartTime))

	if err != nil {
		return result, err
	}
	return result, nil
}

// convertOne converts src and writes it unless this is a dry run
func (r *Runner) convertOne(ctx context.Context, src string, log *logger.Logger) (string, string, error) {
	dst, err := DestinationPath(src, r.config.SrcDir, r.config.DestDir, r.config.DestExt)
	if err != nil {
		return "", "", err
	}

	output, title, err := r.Render(ctx, src)
	if err != nil {
		log.ConversionError(src, dst, err)
		return dst, "", err
	}

	if r.DryRun {
		log.Skipped(dst, "dry run")
		return dst, output, nil
	}

	if err := writeFileAtomic(dst, []byte(output)); err != nil {
		err = fmt.Errorf("%w %s: %w", ErrWrite, dst, err)
		log.ConversionError(src, dst, err)
		return dst, "", err
	}

	log.PageConverted(src, dst, title)
	return dst, output, nil
}

// Render reads and converts one source page without writing anything.
// It returns the destination text and the extracted page title.
func (r *Runner) Render(ctx context.Context, src string) (string, string, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return "", "", fmt.Errorf("%w %s: %w", ErrRead, src, err)
	}

	isRoot := IsRootPage(src, r.config.SrcDir, r.config.RootPage)
	page, err := r.engine.Convert(ctx, src, content, isRoot)
	if err != nil {
		return "", "", fmt.Errorf("%w %s: %w", ErrConvert, src, err)
	}

	return page.Text(), page.Title, nil
}

// ConvertFile converts a single page from src to dst
func (r *Runner) ConvertFile(ctx context.Context, src, dst string) error {
	output, title, err := r.Render(ctx, src)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(dst, []byte(output)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, dst, err)
	}
	r.log.PageConverted(src, dst, title)
	return nil
}

// String returns a human-readable summary of the conversion result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Conversion complete: %d pages converted, %d errors (took %v)",
		r.FilesProcessed,
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
