package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor centres the selected row in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one row. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a selectable list of rows that renders only the rows that fit in
// its viewport. The dashboard feeds it the records of the current page and
// replaces them whenever the page changes.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the highlighted row index (0-based).
	selected int

	// visibleFrom and visibleTo bound the rendered window, [from, to).
	visibleFrom int
	visibleTo   int

	height int
	width  int
}

// New creates a list over items with a viewport of height rows.
func New[T any](items []T, height, width int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the selection on navigation keys and resizes on window
// changes. Other messages are ignored.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys move the selection.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return
		}
		switch msg.Runes[0] {
		case 'j':
			m.SetSelected(m.selected + 1)
		case 'k':
			m.SetSelected(m.selected - 1)
		}
	default:
	}
}

// SetItems replaces the rows. The selection is kept when it is still in
// range and moves to the last row otherwise.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize changes the viewport.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

// updateVisibleRange keeps the selected row inside the viewport, centring it
// where the list is long enough.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 || m.height <= 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.selected - m.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}

	m.visibleFrom, m.visibleTo = from, to
}

// View renders the rows in the viewport, one per line.
func (m *Model[T]) View() string {
	if m.visibleTo <= m.visibleFrom {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the number of rows.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the highlighted row index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected highlights index, clamped to the rows.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// SelectedItem returns the highlighted row. ok is false when the list is
// empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// VisibleFrom returns the first rendered row index (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last rendered row index (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *Model[T]) Width() int {
	return m.width
}
