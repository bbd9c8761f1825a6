package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/dokumd/internal/styles"
)

// maxListedErrors caps how many page errors the summary prints
const maxListedErrors = 5

// ConvertResult holds the result of a conversion run
type ConvertResult struct {
	FilesProcessed int
	Errors         []error
	Duration       time.Duration
	DryRun         bool
}

// ProgressMsg is sent after each page finishes
type ProgressMsg struct {
	Done   int
	Total  int
	Source string
	Err    error
}

// DoneMsg is sent when the conversion run completes
type DoneMsg struct {
	Result *ConvertResult
	Err    error
}

// convertModel is the Bubble Tea model for the conversion progress display
type convertModel struct {
	spinner   spinner.Model
	srcDir    string
	status    string
	done      int
	total     int
	failed    int
	complete  bool
	cancelled bool
	result    *ConvertResult
	err       error
	onCancel  func()
}

// InitConvertModel creates a new conversion progress model. onCancel is
// called when the user quits before the run finishes.
func InitConvertModel(srcDir string, onCancel func()) convertModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return convertModel{
		spinner:  s,
		srcDir:   srcDir,
		status:   "Scanning " + srcDir + "...",
		onCancel: onCancel,
	}
}

func (m convertModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m convertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.complete {
				m.cancelled = true
				if m.onCancel != nil {
					m.onCancel()
				}
			}
			return m, tea.Quit
		}

	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		if msg.Err != nil {
			m.failed++
		}
		m.status = "Converting " + m.relative(msg.Source)
		return m, nil

	case DoneMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m convertModel) View() string {
	if m.complete {
		return m.summary()
	}
	if m.cancelled {
		return styles.WarningStyle.Render("✗ Conversion cancelled") + "\n"
	}

	counter := ""
	if m.total > 0 {
		counter = styles.HighlightStyle.Render(fmt.Sprintf(" [%d/%d]", m.done, m.total))
	}
	if m.failed > 0 {
		counter += " " + styles.ErrorStyle.Render(fmt.Sprintf("%d failed", m.failed))
	}

	return fmt.Sprintf("\n%s %s%s\n\n%s\n", m.spinner.View(), m.status, counter,
		styles.HelpStyle.Render("press q to cancel"))
}

// Cancelled reports whether the user quit before the run finished
func (m convertModel) Cancelled() bool {
	return m.cancelled
}

func (m convertModel) summary() string {
	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Conversion failed: "+m.err.Error()) + "\n"
	}

	completed := styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", m.result.Duration.Round(time.Millisecond)))

	if m.result.FilesProcessed == 0 && len(m.result.Errors) == 0 {
		return styles.SuccessStyle.Render("✓ No pages found in "+m.srcDir) + "\n" + completed + "\n"
	}

	verb := "Converted"
	if m.result.DryRun {
		verb = "Would convert"
	}
	msg := styles.SuccessStyle.Render(fmt.Sprintf("✓ %s %d page(s)", verb, m.result.FilesProcessed))
	if len(m.result.Errors) > 0 {
		msg += ", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", len(m.result.Errors)))
	}
	msg += "\n"

	for i, err := range m.result.Errors {
		if i == maxListedErrors {
			msg += styles.DimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.result.Errors)-maxListedErrors)) + "\n"
			break
		}
		msg += styles.ErrorStyle.Render("  ✗ "+err.Error()) + "\n"
	}

	return msg + completed + "\n"
}

func (m convertModel) relative(path string) string {
	if rel, err := filepath.Rel(m.srcDir, path); err == nil {
		return rel
	}
	return path
}
