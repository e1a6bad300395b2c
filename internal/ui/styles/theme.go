package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	Muted     = lipgloss.Color("#6B7280")
	TextDim   = lipgloss.Color("#9CA3AF")
	Text      = lipgloss.Color("#F9FAFB")
	BgDark    = lipgloss.Color("#1F2937")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// HeaderStyle is TitleStyle without margins, for line-oriented output
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	IndexStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	FileSizeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// Cursor renders the marker in front of the highlighted row
func Cursor(active bool) string {
	if active {
		return SelectedStyle.Render("❯")
	}
	return " "
}
