package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/gerunddev/dokumd/internal/batch"
	"github.com/gerunddev/dokumd/internal/diff"
	"github.com/gerunddev/dokumd/internal/tui"
)

// Review converts every page in dry run mode and opens an interactive table
// of what would change. Pages can be written one at a time from the table.
func Review(args []string) {
	f, _, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail("Invalid arguments", err)
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		fail("Error loading config", err)
	}
	f.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		fail("Invalid configuration", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		fail("Invalid configuration", err)
	}

	log, cleanup := openLogger(cfg, f.common.verbose)
	defer cleanup()

	opts, err := cfg.ConverterOptions(time.Now)
	if err != nil {
		fail("Invalid configuration", err)
	}

	runner := batch.NewRunner(cfg, batch.NewEngine(cfg, opts, log))
	runner.SetLogger(log)
	runner.DryRun = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	var progress []batch.Progress
	runner.OnProgress = func(p batch.Progress) {
		mu.Lock()
		defer mu.Unlock()
		progress = append(progress, p)
	}

	writePage := func(page tui.PageChange) error {
		return runner.ConvertFile(ctx, filepath.Join(cfg.SrcDir, page.Source), page.Dest)
	}

	p := tea.NewProgram(tui.InitReviewModel(writePage), tea.WithAltScreen())

	go func() {
		result, err := runner.Run(ctx)
		if err != nil {
			p.Send(tui.ReviewMsg{Err: err})
			return
		}
		p.Send(tui.ReviewMsg{Pages: pageChanges(cfg.SrcDir, progress, result.Outputs)})
	}()

	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}
}

// pageChanges classifies each converted page against its existing destination
func pageChanges(srcDir string, progress []batch.Progress, outputs map[string]string) []tui.PageChange {
	pages := make([]tui.PageChange, 0, len(progress))

	for _, p := range progress {
		page := tui.PageChange{Source: p.Source, Dest: p.Dest}
		if rel, err := filepath.Rel(srcDir, p.Source); err == nil {
			page.Source = rel
		}

		if p.Err != nil {
			page.Status = tui.StatusFailed
			page.Diff = p.Err.Error()
			pages = append(pages, page)
			continue
		}

		output, ok := outputs[p.Dest]
		if !ok {
			continue
		}

		_, statErr := os.Stat(p.Dest)
		unified, err := diff.AgainstFile(p.Dest, output)
		switch {
		case err != nil:
			page.Status = tui.StatusFailed
			page.Diff = err.Error()
		case os.IsNotExist(statErr):
			page.Status = tui.StatusNew
			page.Diff = diff.RenderUnified(unified)
		case unified == "":
			page.Status = tui.StatusUnchanged
		default:
			page.Status = tui.StatusChanged
			page.Diff = diff.RenderUnified(unified)
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Source < pages[j].Source
	})
	return pages
}
