package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/router"
	"github.com/five82/shelf/internal/state"
)

// Controller is the application state the UI drives.
type Controller interface {
	Snapshot() state.Snapshot
	Start(ctx context.Context)
	Refresh(ctx context.Context)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller Controller
	Translator *locale.Translator
	Logger     *zap.Logger
	APIBase    string
	PollTick   time.Duration
	ThemeName  string
	PrefsPath  string
	LogPath    string
	// StartPath is the route shown first; empty means the authors list.
	StartPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      Controller
	tr        *locale.Translator
	log       *zap.Logger
	keys      keyMap
	apiBase   string
	prefsPath string
	logPath   string
	pollTick  time.Duration

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// Routing
	history router.History
	route   router.Route

	// Authors list cursor
	selectedRow int

	// Books and author detail body
	listViewport viewport.Model

	// Login form
	loginInputs   [2]textinput.Model // username, password
	loginFocusIdx int
	submitting    bool

	// Go-to prompt
	showGoTo  bool
	gotoInput textinput.Model

	// Log overlay
	showLogs    bool
	logViewport viewport.Model
	logLines    []string
	logErr      error

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tr := opts.Translator
	if tr == nil {
		tr = locale.New("")
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:          ctx,
		ctrl:         opts.Controller,
		tr:           tr,
		log:          logger.Named("ui"),
		keys:         DefaultKeyMap(),
		apiBase:      opts.APIBase,
		prefsPath:    prefsPath,
		logPath:      opts.LogPath,
		pollTick:     pollTick,
		theme:        GetTheme(opts.ThemeName),
		listViewport: viewport.New(0, 0),
		logViewport:  viewport.New(0, 0),
	}
	m.initLoginInputs()
	m.initGoToInput()

	m.route = m.history.Current()
	if strings.TrimSpace(opts.StartPath) != "" {
		m.navigate(opts.StartPath)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.ctrl != nil {
		cmds = append(cmds,
			startCmd(m.ctx, m.ctrl),
			fetchSnapshotCmd(m.ctrl),
		)
	}
	if m.route.View == router.ViewLogin {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
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
		m.syncListViewport()
		m.syncLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case refreshedMsg:
		return m, m.fetchSnapshot()

	case logTailMsg:
		m.applyLogTail(msg)
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutResultMsg:
		if msg.err != nil {
			m.log.Warn("logout finished with error", zap.Error(msg.err))
		}
		return m, m.fetchSnapshot()
	}

	// Cursor blink and other input housekeeping.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.tr.T(locale.Loading)
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey routes input to the top-most layer: modal, help, log overlay,
// go-to prompt, login form, then global and per-view keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	if m.showGoTo {
		return m.handleGoToKey(msg)
	}

	if m.route.View == router.ViewLogin {
		return m.handleLoginKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.syncListViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.ctrl)

	case key.Matches(msg, m.keys.ToggleLogs):
		return m, m.openLogs()

	case key.Matches(msg, m.keys.GoTo):
		return m, m.openGoTo()

	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil

	case key.Matches(msg, m.keys.ViewAuthors):
		m.navigate(router.PathAuthors)
		return m, nil

	case key.Matches(msg, m.keys.ViewBooks):
		m.navigate(router.PathBooks)
		return m, nil

	case key.Matches(msg, m.keys.ViewLogin):
		m.navigate(router.PathLogin)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Logout):
		if !m.snapshot.IsAuthenticated() {
			return m, nil
		}
		return m, logoutCmd(m.ctx, m.ctrl)
	}

	switch m.route.View {
	case router.ViewAuthors:
		return m.handleAuthorsKey(msg)
	case router.ViewBooks, router.ViewAuthorDetail:
		return m.handleScrollKey(msg)
	}
	return m, nil
}

// handleAuthorsKey moves the cursor and opens the selected author.
func (m Model) handleAuthorsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Authors)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = min(m.selectedRow+m.listRows(), count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-m.listRows(), 0)
	case key.Matches(msg, m.keys.Confirm):
		if author, ok := m.selectedAuthor(); ok {
			m.navigate(router.AuthorPath(author.ID))
		}
	}
	return m, nil
}

// handleScrollKey scrolls the books and author detail bodies.
func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.listViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.listViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.listViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.listViewport.GotoBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.listViewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.listViewport.PageUp()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	return m, tea.Batch(m.fetchSnapshot(), tickCmd(m.pollTick))
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if n := len(snap.Authors); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
	m.syncListViewport()
}

// navigate pushes path onto the history and shows it.
func (m *Model) navigate(path string) {
	m.show(m.history.Push(path))
}

// back returns to the previous route, if any.
func (m *Model) back() {
	if route, ok := m.history.Back(); ok {
		m.show(route)
	}
}

func (m *Model) show(route router.Route) {
	if route.Path == m.route.Path {
		return
	}
	m.route = route
	m.listViewport.GotoTop()
	if route.View == router.ViewLogin {
		m.resetLoginForm()
	}
	m.syncListViewport()
}

func (m Model) selectedAuthor() (library.Author, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Authors) {
		return library.Author{}, false
	}
	return m.snapshot.Authors[m.selectedRow], true
}

func (m Model) fetchSnapshot() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	return fetchSnapshotCmd(m.ctrl)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.savePrefs()
	return m, tea.Quit
}

// savePrefs records the theme and current route. Failures are logged only.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastPath: m.route.Path}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// updateFocusedInput forwards non-key messages to the active text input.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.showGoTo:
		m.gotoInput, cmd = m.gotoInput.Update(msg)
	case m.route.View == router.ViewLogin:
		i := m.loginFocusIdx
		m.loginInputs[i], cmd = m.loginInputs[i].Update(msg)
	}
	return m, cmd
}

// handleLoginResult shows the alert for rejected credentials and returns
// to the authors list otherwise.
func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	var authErr *library.AuthError
	switch {
	case msg.err == nil:
	case errors.As(msg.err, &authErr):
		m.modal = newAlert(m.tr.T(locale.LoginFailed), m.tr.T(locale.AlertDismiss))
		return m, nil
	case errors.Is(msg.err, state.ErrMissingCredentials):
		m.modal = newAlert(m.tr.T(locale.MissingCredentials), m.tr.T(locale.AlertDismiss))
		return m, nil
	default:
		// The token is in memory even when persisting it failed.
		m.log.Warn("login finished with error", zap.Error(msg.err))
	}

	m.resetLoginForm()
	m.navigate(router.PathAuthors)
	return m, m.fetchSnapshot()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshedMsg struct{}

type loginResultMsg struct{ err error }

type logoutResultMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(ctrl.Snapshot())
	}
}

func startCmd(ctx context.Context, ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Start(ctx)
		return refreshedMsg{}
	}
}

func refreshCmd(ctx context.Context, ctrl Controller) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		ctrl.Refresh(ctx)
		return refreshedMsg{}
	}
}

func loginCmd(ctx context.Context, ctrl Controller, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: ctrl.Login(ctx, username, password)}
	}
}

func logoutCmd(ctx context.Context, ctrl Controller) tea.Cmd {
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		return logoutResultMsg{err: ctrl.Logout(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
