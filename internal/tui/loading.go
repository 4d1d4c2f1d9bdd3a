package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState drives the spinner shown while the collections are fetched.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a loading state with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading comments and users..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return ""
	}
	return l.spinner.View() + " " + l.message + "\n"
}
