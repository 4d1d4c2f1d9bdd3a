package tui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/logging"
	"github.com/rshade/commentdash/internal/session"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/tui/detail"
	listview "github.com/rshade/commentdash/internal/tui/list"
)

// ViewState is the screen the dashboard is showing.
type ViewState int

const (
	// ViewStateLoading waits for both collections.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the comment table.
	ViewStateList
	// ViewStateDetail shows one comment.
	ViewStateDetail
	// ViewStateQuitting is entered on quit.
	ViewStateQuitting
	// ViewStateError is terminal: a fetch failed.
	ViewStateError
)

// inputMode is the text field currently receiving keys, if any.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputGoto
)

const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyLeft     = "left"
	keyRight    = "right"
	keyPrev     = "p"
	keyNext     = "n"
	keyGoto     = "g"
	keyPageSize = "z"

	defaultWidth  = 120
	defaultHeight = 30
	minRows       = 3

	// chromeHeight is the number of lines around the table rows.
	chromeHeight = 12

	searchInputCharLimit = 100
	searchInputWidth     = 40
	gotoInputCharLimit   = 6
	gotoInputWidth       = 8

	helpText = "[/] Search  [1-3] Sort  [←/→] Page  [g] Go to page  [z] Page size  [Enter] Details  [q] Quit"
)

// sortKeys maps the sort keys to columns in display order.
var sortKeys = map[string]engine.SortColumn{
	"1": engine.ColumnPostID,
	"2": engine.ColumnName,
	"3": engine.ColumnEmail,
}

// dashboardLoadedMsg carries the result of the initial fetch.
type dashboardLoadedMsg struct {
	lv   *engine.ListView
	data *source.Data
	err  error
}

// DashboardOptions configures the dashboard.
type DashboardOptions struct {
	// PageSizeOptions are cycled by the page-size key. Empty means
	// engine.PageSizeOptions.
	PageSizeOptions []int
}

// DashboardModel is the Bubble Tea model for the comment dashboard. Every
// change to search, sort, page, or page size is persisted through the
// session before the next render.
type DashboardModel struct {
	ctx  context.Context
	sess *session.Session

	state    ViewState
	loading  *LoadingState
	fetchCmd tea.Cmd
	err      error

	lv   *engine.ListView
	data *source.Data
	view engine.DerivedView

	rows      *listview.Model[engine.Comment]
	detail    *detail.Model
	search    textinput.Model
	gotoInput textinput.Model
	input     inputMode

	pageSizes []int
	status    string

	width  int
	height int
}

// NewDashboardModel creates a dashboard that starts loading through sess.
func NewDashboardModel(ctx context.Context, sess *session.Session, opts DashboardOptions) *DashboardModel {
	pageSizes := opts.PageSizeOptions
	if len(pageSizes) == 0 {
		pageSizes = engine.PageSizeOptions()
	}

	m := &DashboardModel{
		ctx:       ctx,
		sess:      sess,
		state:     ViewStateLoading,
		loading:   NewLoadingState(),
		search:    newSearchInput(),
		gotoInput: newGotoInput(),
		pageSizes: pageSizes,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.rows = listview.New[engine.Comment](nil, m.rowsHeight(), m.width, m.renderRow)
	m.fetchCmd = func() tea.Msg {
		lv, data, err := sess.Load(ctx)
		return dashboardLoadedMsg{lv: lv, data: data, err: err}
	}
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search name, email, comment..."
	ti.Prompt = "Search: "
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

func newGotoInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Go to page: "
	ti.CharLimit = gotoInputCharLimit
	ti.Width = gotoInputWidth
	ti.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	return ti
}

// Init starts the spinner and the fetch.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd)
}

// Err returns the fetch error that ended the session, if any.
func (m *DashboardModel) Err() error {
	return m.err
}

// State returns the current screen.
func (m *DashboardModel) State() ViewState {
	return m.state
}

// ListView returns the engine behind the table, nil until loaded.
func (m *DashboardModel) ListView() *engine.ListView {
	return m.lv
}

// DerivedView returns the page currently rendered.
func (m *DashboardModel) DerivedView() engine.DerivedView {
	return m.view
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetSize(m.width, m.rowsHeight())
		if m.detail != nil {
			_, _ = m.detail.Update(msg)
		}
		return m, nil
	case dashboardLoadedMsg:
		return m.handleLoadingComplete(msg)
	case detail.BackMsg:
		m.state = ViewStateList
		m.detail = nil
		return m, nil
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m *DashboardModel) handleLoadingComplete(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		logging.FromContext(m.ctx).Error().Ctx(m.ctx).Err(msg.err).Msg("dashboard data fetch failed")
		return m, tea.Quit
	}

	m.lv = msg.lv
	m.data = msg.data
	m.search.SetValue(m.lv.State().SearchTerm)
	m.state = ViewStateList
	m.refresh(true)
	return m, nil
}

func (m *DashboardModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, m.loading.Update(msg)
}

func (m *DashboardModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.input {
	case inputSearch:
		return m.handleSearchInput(msg)
	case inputGoto:
		return m.handleGotoInput(msg)
	case inputNone:
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()
	if column, isSort := sortKeys[key]; isSort {
		m.mutate(false, func(lv *engine.ListView) { lv.SetSort(column) })
		return m, nil
	}

	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.input = inputSearch
		return m, m.search.Focus()
	case keyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.mutate(true, func(lv *engine.ListView) { lv.SetSearchTerm("") })
		}
		return m, nil
	case keyLeft, keyPrev, "h":
		m.changePage(m.lv.PreviousPage())
		return m, nil
	case keyRight, keyNext, "l":
		m.changePage(m.lv.NextPage())
		return m, nil
	case keyGoto:
		m.input = inputGoto
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()
	case keyPageSize:
		size := m.nextPageSize()
		m.mutate(true, func(lv *engine.ListView) { lv.SetPageSize(size) })
		return m, nil
	case keyEnter:
		return m.openDetail()
	}

	_, cmd := m.rows.Update(msg)
	return m, cmd
}

func (m *DashboardModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.input = inputNone
			m.search.Blur()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.mutate(true, func(lv *engine.ListView) { lv.SetSearchTerm(after) })
	}
	return m, cmd
}

func (m *DashboardModel) handleGotoInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			m.input = inputNone
			m.gotoInput.Blur()
			page, err := strconv.Atoi(strings.TrimSpace(m.gotoInput.Value()))
			if err != nil {
				return m, nil
			}
			m.changePage(m.lv.SetPage(page))
			return m, nil
		case keyEsc:
			m.input = inputNone
			m.gotoInput.Blur()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *DashboardModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.state = ViewStateList
		return m, nil
	}
	_, cmd := m.detail.Update(msg)
	return m, cmd
}

func (m *DashboardModel) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC, keyEsc, keyEnter:
			return m, tea.Quit
		}
	}
	return m, nil
}

// openDetail stores the highlighted comment and switches to its detail view.
func (m *DashboardModel) openDetail() (tea.Model, tea.Cmd) {
	selected, ok := m.rows.SelectedItem()
	if !ok {
		return m, nil
	}
	if err := m.sess.Select(m.ctx, selected); err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(err).Msg("could not store selected comment")
		m.status = "Could not save the selection"
	}
	m.detail = detail.FromSession(m.ctx, m.sess, m.width)
	m.state = ViewStateDetail
	return m, m.detail.Init()
}

// changePage persists and re-renders after a page move that took effect.
// Moves rejected by the engine leave everything untouched.
func (m *DashboardModel) changePage(changed bool) {
	if !changed {
		return
	}
	m.persist()
	m.refresh(true)
}

// mutate applies fn to the engine, persists the new ViewState, and
// re-renders. resetSelection moves the highlight to the first row.
func (m *DashboardModel) mutate(resetSelection bool, fn func(lv *engine.ListView)) {
	if m.lv == nil {
		return
	}
	fn(m.lv)
	m.persist()
	m.refresh(resetSelection)
}

func (m *DashboardModel) persist() {
	if err := m.sess.Persist(m.ctx, m.lv); err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).Err(err).Msg("could not persist view state")
		m.status = "Could not save view state"
		return
	}
	m.status = ""
}

func (m *DashboardModel) refresh(resetSelection bool) {
	m.view = m.lv.View()
	m.rows.SetItems(m.view.Records)
	if resetSelection {
		m.rows.SetSelected(0)
	}
}

// nextPageSize returns the option after the current page size, wrapping
// around. A size that is not an option moves to the first option.
func (m *DashboardModel) nextPageSize() int {
	current := m.lv.State().PageSize
	i := slices.Index(m.pageSizes, current)
	if i < 0 {
		return m.pageSizes[0]
	}
	return m.pageSizes[(i+1)%len(m.pageSizes)]
}

func (m *DashboardModel) rowsHeight() int {
	return max(m.height-chromeHeight, minRows)
}

func (m *DashboardModel) renderRow(c engine.Comment, selected bool) string {
	return RenderCommentRow(c, selected, m.width)
}

// View renders the current screen.
func (m *DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *DashboardModel) renderDetailView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(m.currentUser(), m.width),
		"",
		m.detail.View(),
	)
}

// currentUser is the first fetched user, shown in the header.
func (m *DashboardModel) currentUser() *engine.User {
	if m.data == nil {
		return nil
	}
	return m.data.CurrentUser()
}

func (m *DashboardModel) renderListView() string {
	searchLine := m.search.View()
	if m.input == inputGoto {
		searchLine = m.gotoInput.View()
	}

	sections := []string{
		RenderHeader(m.currentUser(), m.width),
		"",
		InfoStyle.Render("Comments") + "   " + RenderSortBar(m.view),
		searchLine,
		"",
	}

	if m.view.IsEmpty() {
		sections = append(sections, SubtleStyle.Render(EmptyResultMessage))
	} else {
		sections = append(sections, RenderTableHeader(m.width), m.rows.View())
	}

	footer := RenderPaginationBar(m.view)
	if summary := RenderSummary(m.view); summary != "" {
		footer = LabelStyle.Render(summary) + "   " + footer
	}
	sections = append(sections, "", footer)

	if m.status != "" {
		sections = append(sections, ErrorStyle.Render(m.status))
	}
	sections = append(sections, SubtleStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
