package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"

	colorGreen  = "#04B575"
	colorYellow = "#E5C07B"
	colorOrange = "#D19A66"
	colorRed    = "#FF0000"
)

// Styles for the TUI application
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginTop(1).
		MarginBottom(1)

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorRed))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(1, 2)

	HighlightStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorPrimary)).
		Padding(0, 1)

	labelStyles = map[string]lipgloss.Style{
		"GREEN":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen)),
		"YELLOW": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorYellow)),
		"ORANGE": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorOrange)),
		"RED":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed)),
	}
)

// LabelStyle returns the style for a risk label, defaulting to info grey.
func LabelStyle(label string) lipgloss.Style {
	if s, ok := labelStyles[label]; ok {
		return s
	}
	return InfoStyle
}
