package listview

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(item int, selected bool) string {
	if selected {
		return "> " + strconv.Itoa(item)
	}
	return "  " + strconv.Itoa(item)
}

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func press(m *Model[int], msg tea.KeyMsg) {
	_, _ = m.Update(msg)
}

func TestModel_Navigation(t *testing.T) {
	m := New(items(20), 5, 80, render)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 6, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 19, m.Selected())
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 19, m.Selected(), "selection stops at the last row")

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Selected())
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, m.Selected())
}

func TestModel_VisibleRange(t *testing.T) {
	m := New(items(20), 5, 80, render)
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 5, m.VisibleTo())

	m.SetSelected(10)
	assert.Equal(t, 8, m.VisibleFrom())
	assert.Equal(t, 13, m.VisibleTo())

	m.SetSelected(19)
	assert.Equal(t, 15, m.VisibleFrom())
	assert.Equal(t, 20, m.VisibleTo())

	short := New(items(3), 5, 80, render)
	assert.Equal(t, 0, short.VisibleFrom())
	assert.Equal(t, 3, short.VisibleTo())
}

func TestModel_View(t *testing.T) {
	m := New(items(10), 3, 80, render)
	m.SetSelected(1)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  1", lines[0])
	assert.Equal(t, "> 2", lines[1])
	assert.Equal(t, "  3", lines[2])
}

func TestModel_SetItemsClampsSelection(t *testing.T) {
	m := New(items(10), 5, 80, render)
	m.SetSelected(8)

	m.SetItems(items(4))
	assert.Equal(t, 3, m.Selected())
	got, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, 4, got)

	m.SetItems(nil)
	assert.Equal(t, 0, m.Selected())
	_, ok = m.SelectedItem()
	assert.False(t, ok)
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := New(items(30), 5, 80, render)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 10})

	assert.Equal(t, 120, m.Width())
	assert.Equal(t, 10, m.Height())
	assert.Equal(t, 10, m.VisibleTo()-m.VisibleFrom())
	assert.Equal(t, 30, m.ItemCount())
}
