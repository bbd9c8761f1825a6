package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/dokumd/internal/styles"
)

// Page statuses shown in the review table
const (
	StatusNew       = "new"
	StatusChanged   = "changed"
	StatusUnchanged = "unchanged"
	StatusWritten   = "written"
	StatusFailed    = "failed"
)

// PageChange describes what converting one page would do to its destination
type PageChange struct {
	Source string // relative to the source directory
	Dest   string
	Status string
	Diff   string // rendered diff, or the error text for failed pages
}

// ReviewMsg carries the pages of a dry run
type ReviewMsg struct {
	Pages []PageChange
	Err   error
}

// WrittenMsg reports the result of writing one page
type WrittenMsg struct {
	Index int
	Err   error
}

type reviewModel struct {
	table       table.Model
	viewport    viewport.Model
	pages       []PageChange
	err         error
	notice      string
	ready       bool
	showingDiff bool
	selected    int
	writeFunc   func(PageChange) error
}

// InitReviewModel creates the dry run review model. writeFunc writes one
// page to its destination.
func InitReviewModel(writeFunc func(PageChange) error) reviewModel {
	columns := []table.Column{
		{Title: "Page", Width: 40},
		{Title: "Destination", Width: 50},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(styles.Ink).
		Background(styles.Mark).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Muted).
		Padding(1)

	return reviewModel{
		table:     t,
		viewport:  vp,
		writeFunc: writeFunc,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8

	case tea.KeyMsg:
		if m.showingDiff {
			switch msg.String() {
			case "q", "esc":
				m.showingDiff = false
				return m, nil
			case "w":
				return m, m.write(m.selected)
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "d":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.pages) {
				m.selected = idx
				m.showingDiff = true
				m.viewport.SetContent(m.diffContent(idx))
				m.viewport.GotoTop()
			}
			return m, nil
		case "w":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.pages) {
				return m, m.write(idx)
			}
			return m, nil
		}

	case ReviewMsg:
		m.ready = true
		m.pages = msg.Pages
		m.err = msg.Err
		m.refreshRows()
		return m, nil

	case WrittenMsg:
		if msg.Index < 0 || msg.Index >= len(m.pages) {
			return m, nil
		}
		page := &m.pages[msg.Index]
		if msg.Err != nil {
			m.notice = styles.ErrorStyle.Render("✗ " + msg.Err.Error())
		} else {
			page.Status = StatusWritten
			m.notice = styles.SuccessStyle.Render("✓ Wrote " + page.Dest)
		}
		m.refreshRows()
		return m, nil
	}

	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("dokumd review"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready {
		b.WriteString(styles.DimStyle.Render("Converting pages..."))
		b.WriteString("\n")
		return b.String()
	}

	if m.showingDiff {
		page := m.pages[m.selected]
		b.WriteString(styles.HighlightStyle.Render(fmt.Sprintf("%s → %s", page.Source, page.Dest)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(m.noticeLine())
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • w write page • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.InfoStyle.Render(m.counts()))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.noticeLine())
	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter/d diff • w write page • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m reviewModel) write(idx int) tea.Cmd {
	page := m.pages[idx]
	if m.writeFunc == nil || page.Status == StatusFailed || page.Status == StatusUnchanged {
		return nil
	}
	return func() tea.Msg {
		return WrittenMsg{Index: idx, Err: m.writeFunc(page)}
	}
}

func (m *reviewModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.pages))
	for _, page := range m.pages {
		rows = append(rows, table.Row{page.Source, page.Dest, statusIcon(page.Status) + " " + page.Status})
	}
	m.table.SetRows(rows)
}

func (m reviewModel) diffContent(idx int) string {
	page := m.pages[idx]
	switch {
	case page.Status == StatusUnchanged:
		return "No changes against existing output."
	case page.Diff == "":
		return "(no diff available)"
	default:
		return page.Diff
	}
}

func (m reviewModel) counts() string {
	counts := make(map[string]int)
	for _, page := range m.pages {
		counts[page.Status]++
	}
	return fmt.Sprintf("Pages: %d  new: %d  changed: %d  unchanged: %d  failed: %d",
		len(m.pages), counts[StatusNew], counts[StatusChanged], counts[StatusUnchanged], counts[StatusFailed])
}

func (m reviewModel) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	return m.notice + "\n"
}

func statusIcon(status string) string {
	switch status {
	case StatusNew:
		return "+"
	case StatusChanged:
		return "~"
	case StatusWritten:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "="
	}
}
