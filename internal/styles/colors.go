package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Page status colors follow diff conventions.
var (
	Ink   = lipgloss.Color("#2D2A2E")
	Paper = lipgloss.Color("#FCFCFA")
	Muted = lipgloss.Color("#727072")
	Mark  = lipgloss.Color("#FFD866")

	written = lipgloss.Color("#A9DC76")
	rose    = lipgloss.Color("#FF6188")
	pending = lipgloss.Color("#FC9867")
	link    = lipgloss.Color("#78DCE8")
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(written)
	ErrorStyle   = lipgloss.NewStyle().Foreground(rose)
	WarningStyle = lipgloss.NewStyle().Foreground(pending)
	InfoStyle    = lipgloss.NewStyle().Foreground(link)
	DimStyle     = lipgloss.NewStyle().Foreground(Muted)
	HelpStyle    = DimStyle

	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(rose)
	SpinnerStyle   = lipgloss.NewStyle().Foreground(rose)
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(Mark)

	// setup and config listings
	KeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(link).Width(14)
	ValueStyle = lipgloss.NewStyle().Foreground(Paper)
)
