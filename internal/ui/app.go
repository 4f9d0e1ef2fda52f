package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/norris/internal/favorites"
	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/internal/prefs"
	"github.com/five82/norris/internal/session"
	"github.com/five82/norris/pkg/logger"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *session.Session
	StartView session.View
	ThemeName string
	PrefsPath string
}

// listState is the scroll position of one view.
type listState struct {
	cursor  int
	top     int
	visited bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *session.Session
	prefsPath string

	// UI state
	theme  Theme
	keys   keyMap
	view   session.View
	width  int
	height int
	ready  bool

	lists   map[session.View]*listState
	spinner spinner.Model

	// Overlays
	showHelp bool
	modal    Modal

	// Status line
	notice    string
	noticeErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(nil, nil)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	lists := make(map[session.View]*listState, len(session.Views))
	for _, v := range session.Views {
		lists[v] = &listState{}
	}

	return Model{
		ctx:       ctx,
		session:   sess,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		view:      opts.StartView,
		lists:     lists,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.visit(m.view))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.scrollIntoView(m.view)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		res := session.Result(msg)
		if !m.session.Apply(res) {
			return m, nil
		}
		if res.Err != nil {
			m.setNotice(classifyFetchError(res.Err), true)
		} else if res.View == m.view {
			m.clearNotice()
		}
		m.scrollIntoView(res.View)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		if p, ok := m.modal.(*filterPanel); ok {
			p.loading = m.session.Loading(p.view)
			p.spin = m.spinner.View()
		}
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ViewJokes):
		return m.switchView(session.ViewJokes)
	case key.Matches(msg, m.keys.ViewRandom):
		return m.switchView(session.ViewRandom)
	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(session.ViewFavorites)
	case key.Matches(msg, m.keys.NextView):
		return m.switchView(m.stepView(1))
	case key.Matches(msg, m.keys.PrevView):
		return m.switchView(m.stepView(-1))

	case key.Matches(msg, m.keys.Filter):
		p := newFilterPanel(m.view, m.session.Criteria(m.view))
		p.loading = m.session.Loading(m.view)
		m.modal = p
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		req, ok := m.session.Refresh(m.view)
		if !ok {
			return m, nil
		}
		return m, fetchCmd(m.ctx, m.session, req)

	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleSelected()
		return m, nil
	}

	m.handleNavigation(msg)
	return m, nil
}

// handleModalKey forwards keys to the open filter panel and submits its
// criteria when it closes with Done.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p, ok := m.modal.(*filterPanel); ok {
		p.loading = m.session.Loading(p.view)
	}

	modal, cmd, done := m.modal.Update(msg, m.keys)
	if !done {
		m.modal = modal
		return m, cmd
	}
	m.modal = nil

	p, ok := modal.(*filterPanel)
	if !ok || !p.applied {
		return m, cmd
	}

	st := m.lists[p.view]
	st.cursor, st.top = 0, 0

	req, remote := m.session.Submit(p.view, p.Criteria())
	if !remote {
		return m, cmd
	}
	return m, tea.Batch(cmd, fetchCmd(m.ctx, m.session, req))
}

func (m Model) switchView(v session.View) (tea.Model, tea.Cmd) {
	if v == m.view {
		return m, nil
	}
	m.view = v
	m.clearNotice()
	m.savePrefs()
	return m, m.visit(v)
}

func (m Model) stepView(delta int) session.View {
	n := len(session.Views)
	for i, v := range session.Views {
		if v == m.view {
			return session.Views[((i+delta)%n+n)%n]
		}
	}
	return session.ViewJokes
}

// visit loads a remote view the first time it is shown.
func (m Model) visit(v session.View) tea.Cmd {
	st := m.lists[v]
	if st.visited {
		return nil
	}
	st.visited = true
	if !v.Remote() {
		return nil
	}
	req, ok := m.session.Submit(v, jokes.Criteria{})
	if !ok {
		return nil
	}
	return fetchCmd(m.ctx, m.session, req)
}

func (m *Model) toggleSelected() {
	list := m.session.Display(m.view)
	if len(list) == 0 {
		return
	}
	st := m.lists[m.view]
	st.cursor = clampCursor(st.cursor, len(list))
	selected := list[st.cursor]

	updated, err := m.session.ToggleFavorite(m.view, st.cursor, selected.Text)
	switch {
	case errors.Is(err, jokes.ErrBlankJoke):
		m.setNotice("Empty jokes cannot be favorited", true)
		return
	case errors.Is(err, favorites.ErrPersist):
		logger.Warn("favorite not saved", logger.Int("id", selected.ID), logger.Err(err))
		m.setNotice("Favorite changed but could not be saved", true)
	case err != nil:
		m.setNotice(err.Error(), true)
		return
	default:
		if selected.Favorite {
			m.setNotice("Removed from favorites", false)
		} else {
			m.setNotice("Added to favorites", false)
		}
	}

	st.cursor = clampCursor(st.cursor, len(updated))
	m.scrollIntoView(m.view)
}

func (m *Model) handleNavigation(msg tea.KeyMsg) {
	list := m.session.Display(m.view)
	if len(list) == 0 {
		return
	}
	st := m.lists[m.view]
	heights := rowHeights(list, m.width)

	switch {
	case key.Matches(msg, m.keys.Up):
		st.cursor--
	case key.Matches(msg, m.keys.Down):
		st.cursor++
	case key.Matches(msg, m.keys.Top):
		st.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		st.cursor = len(list) - 1
	case key.Matches(msg, m.keys.PageUp):
		st.cursor -= pageStep(heights, st.top, m.contentHeight())
	case key.Matches(msg, m.keys.PageDown):
		st.cursor += pageStep(heights, st.top, m.contentHeight())
	default:
		return
	}
	st.cursor = clampCursor(st.cursor, len(list))
	st.top = scrollTop(heights, st.cursor, st.top, m.contentHeight())
}

// scrollIntoView keeps the cursor of v inside the list after it changed.
func (m *Model) scrollIntoView(v session.View) {
	list := m.session.Display(v)
	st := m.lists[v]
	st.cursor = clampCursor(st.cursor, len(list))
	st.top = scrollTop(rowHeights(list, m.width), st.cursor, st.top, m.contentHeight())
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, StartView: m.view.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logger.Warn("save prefs", logger.String("path", m.prefsPath), logger.Err(err))
	}
}

// contentHeight is the number of lines left for the joke list.
func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}

// renderMain renders the main layout.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header: logo, tabs and fetch status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Footer: command hints or the latest notice
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderContent renders the list of the current view.
func (m Model) renderContent() string {
	width, height := m.width, m.contentHeight()
	list := m.session.Display(m.view)

	if len(list) == 0 {
		switch {
		case m.session.Loading(m.view):
			return m.renderSkeleton(width, height)
		case m.view == session.ViewFavorites:
			return m.renderEmpty("You haven't favorited anything yet.", "Start adding jokes to favorites", width, height)
		case m.session.Snapshot(m.view).LastError != nil:
			return m.renderEmpty("Could not load jokes.", "Press r to try again", width, height)
		default:
			return m.renderEmpty("No jokes found.", "Press f to change the filter", width, height)
		}
	}

	st := m.lists[m.view]
	return m.renderList(list, st.cursor, st.top, width, height)
}

// Messages

type fetchResultMsg session.Result

// Commands

func fetchCmd(ctx context.Context, sess *session.Session, req session.Request) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg(sess.Run(ctx, req))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
