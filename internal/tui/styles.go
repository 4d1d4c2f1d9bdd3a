package tui

import "github.com/charmbracelet/lipgloss"

// Shared dashboard styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	AvatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	InfoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	// ActiveSortStyle marks a column that is currently sorted.
	ActiveSortStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// CurrentPageStyle marks the current page in the page window.
	CurrentPageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("57"))

	// DisabledStyle renders previous/next at the boundaries.
	DisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
