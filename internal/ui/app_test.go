package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/router"
	"github.com/five82/shelf/internal/state"
)

type fakeController struct {
	mu       sync.Mutex
	snap     state.Snapshot
	loginErr error
	logins   [][2]string
	logouts  int
	starts   int
	refresh  int
}

func (f *fakeController) Snapshot() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeController) Start(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
}

func (f *fakeController) Refresh(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh++
}

func (f *fakeController) Login(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, [2]string{username, password})
	if f.loginErr != nil {
		return f.loginErr
	}
	f.snap.Token = "tok"
	return nil
}

func (f *fakeController) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.snap.Token = ""
	return nil
}

func newTestModel(t *testing.T, ctrl *fakeController, start string) Model {
	t.Helper()
	m := New(Options{
		Controller: ctrl,
		Translator: locale.New("en"),
		APIBase:    "http://127.0.0.1:8005",
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		StartPath:  start,
	})
	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 30})
	return update(m, snapshotMsg(ctrl.Snapshot()))
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = update(m, keyRunes(string(r)))
	}
	return m
}

func librarySnapshot(token string) state.Snapshot {
	return state.Snapshot{
		Token: token,
		Authors: []library.Author{
			{ID: 7, FirstName: "Nikolai", LastName: "Gogol", BirthdayYear: 1809},
			{ID: 42, FirstName: "Leo", LastName: "Tolstoy", BirthdayYear: 1828},
		},
		Books: []library.Book{
			{ID: 1, Name: "War and Peace", Authors: []int64{42}},
			{ID: 2, Name: "Dead Souls", Authors: []int64{7}},
			{ID: 3, Name: "Anna Karenina", Authors: []int64{42}},
		},
	}
}

func TestView_BeforeWindowSizeShowsLoading(t *testing.T) {
	m := New(Options{Controller: &fakeController{}, PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	assert.Equal(t, "Loading...", m.View())
}

func TestInit_StartsController(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl, "")

	msg := startCmd(context.Background(), ctrl)()
	assert.IsType(t, refreshedMsg{}, msg)
	assert.Equal(t, 1, ctrl.starts)

	require.NotNil(t, m.Init())
}

func TestView_EmptyTokenStartupShowsLoginLink(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "")

	header := m.renderHeader()
	assert.Contains(t, header, "Login")
	assert.NotContains(t, header, "Logout")

	view := m.View()
	assert.Contains(t, view, "No authors")
}

func TestView_AuthenticatedShowsLogout(t *testing.T) {
	m := newTestModel(t, &fakeController{snap: librarySnapshot("tok")}, "")

	header := m.renderHeader()
	assert.Contains(t, header, "Logout")
	assert.NotContains(t, header, "Login")
}

func TestView_AuthorDetailListsOnlyTheirBooks(t *testing.T) {
	m := newTestModel(t, &fakeController{snap: librarySnapshot("")}, "/author/42")

	require.Equal(t, router.ViewAuthorDetail, m.route.View)
	view := m.View()
	assert.Contains(t, view, "Leo Tolstoy")
	assert.Contains(t, view, "War and Peace")
	assert.Contains(t, view, "Anna Karenina")
	assert.NotContains(t, view, "Dead Souls")
}

func TestView_UnknownAuthorHasNoBooks(t *testing.T) {
	m := newTestModel(t, &fakeController{snap: librarySnapshot("")}, "/author/abc")

	view := m.View()
	assert.Contains(t, view, "Author abc")
	assert.Contains(t, view, "No books")
	assert.NotContains(t, view, "War and Peace")
}

func TestView_UnknownPathRendersNotFound(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "/nonsense")

	assert.Equal(t, router.ViewNotFound, m.route.View)
	assert.Contains(t, m.View(), "Page /nonsense not found")
}

func TestView_LegacyBookPathRedirects(t *testing.T) {
	m := newTestModel(t, &fakeController{snap: librarySnapshot("")}, "/book")

	assert.Equal(t, router.ViewBooks, m.route.View)
	assert.Equal(t, "/books", m.route.Path)
	view := m.View()
	assert.Contains(t, view, "Dead Souls")
	assert.Contains(t, view, "Leo Tolstoy")
}

func TestAuthors_EnterOpensSelectedAuthor(t *testing.T) {
	m := newTestModel(t, &fakeController{snap: librarySnapshot("")}, "")

	m = update(m, keyRunes("j"))
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "/author/42", m.route.Path)

	m = update(m, keyRunes("u"))
	assert.Equal(t, router.PathAuthors, m.route.Path)
}

func TestAuthors_SelectionClampedWhenListShrinks(t *testing.T) {
	ctrl := &fakeController{snap: librarySnapshot("")}
	m := newTestModel(t, ctrl, "")
	m = update(m, keyRunes("G"))
	require.Equal(t, 1, m.selectedRow)

	m = update(m, snapshotMsg(state.Snapshot{Authors: ctrl.snap.Authors[:1]}))
	assert.Equal(t, 0, m.selectedRow)
}

func TestNavigation_PageKeysAndBack(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "")

	m = update(m, keyRunes("b"))
	assert.Equal(t, router.ViewBooks, m.route.View)

	m = update(m, keyRunes("l"))
	assert.Equal(t, router.ViewLogin, m.route.View)

	// Letters go to the form on the login page; esc leaves it.
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, router.ViewBooks, m.route.View)

	m = update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, router.ViewAuthors, m.route.View)
}

func TestGoTo_NavigatesToTypedPath(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "")

	m = update(m, keyRunes(":"))
	require.True(t, m.showGoTo)
	m.gotoInput.SetValue("")
	m = typeText(m, "/missing")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.showGoTo)
	assert.Equal(t, "/missing", m.route.Path)
	assert.Equal(t, router.ViewNotFound, m.route.View)
}

func TestGoTo_EscapeKeepsRoute(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "/books")

	m = update(m, keyRunes(":"))
	m = typeText(m, "xyz")
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.showGoTo)
	assert.Equal(t, "/books", m.route.Path)
}

func TestLogin_SubmitsFormThroughController(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl, "/login")

	m = typeText(m, "reader")
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "secret")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	msg := cmd()
	require.Equal(t, [][2]string{{"reader", "secret"}}, ctrl.logins)

	m = update(m, msg)
	assert.False(t, m.submitting)
	assert.Nil(t, m.modal)
	assert.Equal(t, router.ViewAuthors, m.route.View)
}

func TestLogin_PasswordIsMasked(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "/login")

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "hunter2")

	assert.NotContains(t, m.View(), "hunter2")
}

func TestLogin_FailureRaisesBlockingAlert(t *testing.T) {
	ctrl := &fakeController{loginErr: &library.AuthError{Status: 400}}
	m := newTestModel(t, ctrl, "/login")

	m = update(m, loginResultMsg{err: ctrl.loginErr})

	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Invalid username or password")
	assert.Equal(t, router.ViewLogin, m.route.View)

	// Other keys are swallowed while the alert is up.
	m = update(m, keyRunes("b"))
	require.NotNil(t, m.modal)
	assert.Equal(t, router.ViewLogin, m.route.View)

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.modal)
}

func TestLogin_FailureAlertIsLocalized(t *testing.T) {
	ctrl := &fakeController{}
	m := New(Options{
		Controller: ctrl,
		Translator: locale.New("ru"),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		StartPath:  "/login",
	})
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})

	m = update(m, loginResultMsg{err: &library.AuthError{Status: 400}})

	assert.Contains(t, m.View(), "Не верный логин или пароль")
}

func TestLogin_MissingCredentialsAlert(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "/login")

	m = update(m, loginResultMsg{err: state.ErrMissingCredentials})

	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Enter both username and password")
}

func TestLogout_OnlyWhenAuthenticated(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl, "")

	_, cmd := m.Update(keyRunes("o"))
	assert.Nil(t, cmd)

	ctrl.snap.Token = "tok"
	m = update(m, snapshotMsg(ctrl.Snapshot()))
	_, cmd = m.Update(keyRunes("o"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, logoutResultMsg{}, msg)
	assert.Equal(t, 1, ctrl.logouts)
}

func TestRefreshKey_RunsControllerRefresh(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl, "")

	_, cmd := m.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.IsType(t, refreshedMsg{}, cmd())
	assert.Equal(t, 1, ctrl.refresh)
}

func TestCycleTheme_PersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Controller: &fakeController{}, ThemeName: "Nightfox", PrefsPath: path, StartPath: "/books"})

	m = update(m, keyRunes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)

	p, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", p.Theme)
	assert.Equal(t, "/books", p.LastPath)
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m := newTestModel(t, &fakeController{}, "")

	m = update(m, keyRunes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(m, keyRunes("x"))
	assert.False(t, m.showHelp)
}

func TestLogs_OverlayShowsTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shelf.log")
	line := `{"level":"warn","time":"2026-03-01T10:15:30.250Z","logger":"state","msg":"fetch failed","resource":"books"}`
	require.NoError(t, os.WriteFile(logPath, []byte(line+"\n"), 0o644))

	m := New(Options{
		Controller: &fakeController{},
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		LogPath:    logPath,
	})
	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 30})

	next, cmd := m.Update(keyRunes("L"))
	m = next.(Model)
	require.True(t, m.showLogs)
	require.NotNil(t, cmd)

	m = update(m, cmd())
	assert.Contains(t, m.View(), "fetch failed resource=books")

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showLogs)
}
