package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary   = "#C792EA"
	colorSuccess   = "#04B575"
	colorError     = "#FF5370"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#7D56F4"
)

var (
	// TitleStyle renders the studio banner.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1)

	// StatusStyle renders healthy state lines.
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	// ErrorStyle renders failures and unreachable markers.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Bold(true)

	// InfoStyle renders secondary detail like capabilities and help.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))

	// BoxStyle frames the finished lesson summary.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 2)

	// HighlightStyle renders section headings.
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)
)
