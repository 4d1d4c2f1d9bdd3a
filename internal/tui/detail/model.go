package detail

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/session"
)

// NoDataMessage is shown when there is no comment to display.
const NoDataMessage = "No comment data available"

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyBack  = "backspace"
	keyRetry = "r"

	labelWidth   = 12
	minBodyWidth = 20
	bodyPadding  = 4
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	avatarStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(labelWidth)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bodyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// State is the load state of the detail view.
type State int

const (
	// StateLoading means the comment is being fetched.
	StateLoading State = iota
	// StateLoaded means the comment is shown.
	StateLoaded
	// StateError means loading failed; 'r' retries.
	StateError
)

// Loader returns the comment to display.
type Loader func(ctx context.Context) (engine.Comment, error)

// BackMsg is emitted when the user leaves the detail view.
type BackMsg struct{}

// loadedMsg carries a load result. seq discards results of superseded loads.
type loadedMsg struct {
	seq     int
	comment engine.Comment
	err     error
}

// Model shows one comment. The comment is loaded when the view opens, not
// when it is constructed, so navigation never waits on it.
type Model struct {
	ctx     context.Context
	loader  Loader
	state   State
	comment engine.Comment
	err     error
	spinner spinner.Model
	seq     int
	width   int
}

// New creates a detail view that loads its comment with loader.
func New(ctx context.Context, loader Loader, width int) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &Model{
		ctx:     ctx,
		loader:  loader,
		state:   StateLoading,
		spinner: s,
		width:   width,
	}
}

// FromSession creates a detail view over the session's selection, falling
// back to the first fetched comment.
func FromSession(ctx context.Context, sess *session.Session, width int) *Model {
	return New(ctx, sess.SelectedComment, width)
}

// Init starts loading.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Model) load() tea.Cmd {
	m.seq++
	seq := m.seq
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		c, err := loader(ctx)
		return loadedMsg{seq: seq, comment: c, err: err}
	}
}

// Update handles load results, the spinner, and keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.comment = msg.comment
		m.err = nil
		m.state = StateLoaded
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC:
			return m, tea.Quit
		case keyEsc, keyBack:
			return m, func() tea.Msg { return BackMsg{} }
		case keyRetry:
			if m.state == StateError {
				m.state = StateLoading
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.load())
			}
		}
	}
	return m, nil
}

// State returns the load state.
func (m *Model) State() State {
	return m.state
}

// Comment returns the loaded comment.
func (m *Model) Comment() engine.Comment {
	return m.comment
}

// Err returns the load error, if any.
func (m *Model) Err() error {
	return m.err
}

// View renders the detail view.
func (m *Model) View() string {
	help := subtleStyle.Render("[Esc] Back  [q] Quit")

	switch m.state {
	case StateLoading:
		return m.spinner.View() + " Loading comment...\n\n" + help
	case StateError:
		return RenderError(m.err) + "\n\n" + subtleStyle.Render("[r] Retry  [Esc] Back  [q] Quit")
	default:
		return Render(m.comment, m.width) + "\n\n" + help
	}
}

// RenderError renders a failed load. A missing selection is reported as
// NoDataMessage rather than as an error.
func RenderError(err error) string {
	if err == nil || errors.Is(err, session.ErrNoSelection) {
		return NoDataMessage
	}
	return errorStyle.Render(fmt.Sprintf("Error: %v", err))
}

// Render renders one comment: avatar initials, name, email, then each field.
// width wraps the body; zero leaves it unwrapped.
func Render(c engine.Comment, width int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Comment Details"))
	sb.WriteString("\n\n")
	sb.WriteString(avatarStyle.Render(engine.Initials(c.Name)))
	sb.WriteString(" ")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Name))
	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render(c.Email))
	sb.WriteString("\n\n")

	field := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}
	field("Comment ID", strconv.Itoa(c.ID))
	field("Post ID", strconv.Itoa(c.PostID))
	field("Name", c.Name)
	field("Email", c.Email)

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Comment"))
	sb.WriteString("\n")
	box := bodyBoxStyle
	if width > 0 {
		box = box.Width(max(width-bodyPadding, minBodyWidth))
	}
	sb.WriteString(box.Render(c.Body))

	return sb.String()
}
