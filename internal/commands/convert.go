package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/gerunddev/dokumd/internal/batch"
	"github.com/gerunddev/dokumd/internal/diff"
	"github.com/gerunddev/dokumd/internal/styles"
	"github.com/gerunddev/dokumd/internal/tui"
)

// Convert converts the configured DokuWiki page tree to Markdown
func Convert(args []string) {
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
	log.ConfigLoaded(cfg.SrcDir, cfg.DestDir, cfg.Workers)

	opts, err := cfg.ConverterOptions(time.Now)
	if err != nil {
		fail("Invalid configuration", err)
	}

	runner := batch.NewRunner(cfg, batch.NewEngine(cfg, opts, log))
	runner.SetLogger(log)
	runner.DryRun = f.dryRun

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.dryRun {
		fmt.Println(styles.TitleStyle.Render("dokumd convert (DRY RUN)"))
	} else {
		fmt.Println(styles.TitleStyle.Render("dokumd convert"))
	}
	fmt.Printf("%s → %s\n\n", styles.DimStyle.Render(cfg.SrcDir), styles.DimStyle.Render(cfg.DestDir))

	var result *batch.Result
	if f.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		result, err = runPlain(ctx, runner)
	} else {
		result, err = runInteractive(ctx, runner, cfg.SrcDir)
	}

	if f.dryRun && f.diff && result != nil {
		printDiffs(result.Outputs)
	}

	if err != nil || (result != nil && len(result.Errors) > 0) {
		os.Exit(1)
	}
}

// runPlain converts with one output line per page
func runPlain(ctx context.Context, runner *batch.Runner) (*batch.Result, error) {
	runner.OnProgress = func(p batch.Progress) {
		if p.Err != nil {
			fmt.Println(styles.ErrorStyle.Render(fmt.Sprintf("[%d/%d] ✗ %v", p.Done, p.Total, p.Err)))
			return
		}
		fmt.Println(styles.DimStyle.Render(fmt.Sprintf("[%d/%d] %s", p.Done, p.Total, p.Source)))
	}

	result, err := runner.Run(ctx)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Conversion failed: " + err.Error()))
		return result, err
	}

	if len(result.Errors) > 0 {
		fmt.Println(styles.WarningStyle.Render(result.String()))
	} else {
		fmt.Println(styles.SuccessStyle.Render("✓ " + result.String()))
	}
	return result, nil
}

// runInteractive converts behind the spinner progress view
func runInteractive(ctx context.Context, runner *batch.Runner, srcDir string) (*batch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.InitConvertModel(srcDir, cancel)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	runner.OnProgress = func(pr batch.Progress) {
		p.Send(tui.ProgressMsg{Done: pr.Done, Total: pr.Total, Source: pr.Source, Err: pr.Err})
	}

	var result *batch.Result
	var runErr error
	done := make(chan struct{})

	// Run conversion in goroutine and send result to program
	go func() {
		defer close(done)
		result, runErr = runner.Run(ctx)

		var tuiResult *tui.ConvertResult
		if result != nil {
			tuiResult = &tui.ConvertResult{
				FilesProcessed: result.FilesProcessed,
				Errors:         result.Errors,
				Duration:       result.EndTime.Sub(result.StartTime),
				DryRun:         runner.DryRun,
			}
		}

		p.Send(tui.DoneMsg{Result: tuiResult, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		return result, err
	}

	<-done
	return result, runErr
}

// printDiffs shows what a dry run would change, in destination path order
func printDiffs(outputs map[string]string) {
	paths := make([]string, 0, len(outputs))
	for dst := range outputs {
		paths = append(paths, dst)
	}
	sort.Strings(paths)

	changed := 0
	for _, dst := range paths {
		unified, err := diff.AgainstFile(dst, outputs[dst])
		if err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
			continue
		}
		if unified == "" {
			continue
		}
		changed++
		fmt.Println(styles.HighlightStyle.Render(dst))
		fmt.Print(diff.RenderUnified(unified))
	}

	if changed == 0 {
		fmt.Println(styles.DimStyle.Render("No changes against existing output"))
	}
}
