package tui

import (
	"context"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/clipboard"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/logging"
	"github.com/mmcdole/xtconsole/internal/service"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	settings  domain.Settings
	playlists []*domain.Playlist
	xtreams   []*domain.XtreamAccount

	order         []string
	calls         map[string]int
	failSettings  error
	xtreamUpdates []domain.XtreamUpdate
	nextID        int
	deadlines     int
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: make(map[string]int)}
}

func (b *stubBackend) hit(ctx context.Context, name string) {
	b.order = append(b.order, name)
	b.calls[name]++
	if _, ok := ctx.Deadline(); ok {
		b.deadlines++
	}
}

func (b *stubBackend) GetSettings(ctx context.Context) (domain.Settings, error) {
	b.hit(ctx, "GetSettings")
	return b.settings, b.failSettings
}

func (b *stubBackend) SaveSettings(ctx context.Context, s domain.Settings) error {
	b.hit(ctx, "SaveSettings")
	b.settings = s
	return nil
}

func (b *stubBackend) ListPlaylists(ctx context.Context) ([]*domain.Playlist, error) {
	b.hit(ctx, "ListPlaylists")
	return append([]*domain.Playlist(nil), b.playlists...), nil
}

func (b *stubBackend) CreatePlaylist(ctx context.Context, p domain.PlaylistCreate) (string, error) {
	b.hit(ctx, "CreatePlaylist")
	b.nextID++
	id := strconv.Itoa(b.nextID)
	b.playlists = append(b.playlists, &domain.Playlist{ID: id, Name: p.Name, SourceURL: p.URL, Mode: p.Mode, RefreshIntervalHours: p.EveryHours})
	return id, nil
}

func (b *stubBackend) UpdatePlaylist(ctx context.Context, _ string, _ domain.PlaylistUpdate) error {
	b.hit(ctx, "UpdatePlaylist")
	return nil
}

func (b *stubBackend) DeletePlaylist(ctx context.Context, id string) error {
	b.hit(ctx, "DeletePlaylist")
	kept := b.playlists[:0]
	for _, p := range b.playlists {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	b.playlists = kept
	return nil
}

func (b *stubBackend) ListXtreams(ctx context.Context) ([]*domain.XtreamAccount, error) {
	b.hit(ctx, "ListXtreams")
	return append([]*domain.XtreamAccount(nil), b.xtreams...), nil
}

func (b *stubBackend) CreateXtream(ctx context.Context, d domain.XtreamDraft) (string, error) {
	b.hit(ctx, "CreateXtream")
	b.nextID++
	id := strconv.Itoa(b.nextID)
	b.xtreams = append(b.xtreams, &domain.XtreamAccount{ID: id, Name: d.Name, Username: d.Username, Password: d.Password})
	return id, nil
}

func (b *stubBackend) UpdateXtream(ctx context.Context, _ string, u domain.XtreamUpdate) error {
	b.hit(ctx, "UpdateXtream")
	b.xtreamUpdates = append(b.xtreamUpdates, u)
	return nil
}

func (b *stubBackend) DeleteXtream(ctx context.Context, _ string) error {
	b.hit(ctx, "DeleteXtream")
	return nil
}

func (b *stubBackend) Convert(ctx context.Context, _ string, _ domain.Mode) ([]byte, error) {
	b.hit(ctx, "Convert")
	return []byte("#EXTM3U\n"), nil
}

type fakeCopier struct {
	method clipboard.Method
	err    error
	copied []string
}

func (c *fakeCopier) Copy(text string) (clipboard.Method, error) {
	c.copied = append(c.copied, text)
	return c.method, c.err
}

func newTestModel(b *stubBackend, copier Copier) Model {
	session := service.NewSession(b, nil, logging.NullLogger())
	m := NewModel(session, console.NewState("http://panel:8000"), copier, nil, Options{DownloadDir: ""})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 48})
	return next.(Model)
}

// seeded returns a model whose state already holds the backend's collections
func seeded(b *stubBackend) Model {
	m := newTestModel(b, &fakeCopier{method: clipboard.MethodSystem})
	m.Core.ApplyPlaylists(b.playlists)
	m.Core.ApplyXtreams(b.xtreams, false)
	m.refreshRows()
	m.booting = false
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k string) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// exec runs a command, expanding batches. Only use it on commands that do not tick.
func exec(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, exec(t, c)...)
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func execOne(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := exec(t, cmd)
	require.Len(t, msgs, 1)
	return msgs[0]
}

func TestBootLoadsSettingsThenPlaylistsThenAccounts(t *testing.T) {
	b := newStubBackend()
	b.settings = domain.Settings{ResolverBaseURL: "res.example:9000"}
	b.playlists = []*domain.Playlist{{ID: "1", Name: "News", Mode: domain.ModeTV}}
	b.xtreams = []*domain.XtreamAccount{{ID: "x", Name: "Home", Categories: domain.CategorySelection{Live: []string{"1"}}}}
	m := newTestModel(b, &fakeCopier{})

	msg := execOne(t, m.Init())
	require.IsType(t, SettingsLoadedMsg{}, msg)
	m, cmd := update(m, msg)

	msg = execOne(t, cmd)
	require.IsType(t, PlaylistsLoadedMsg{}, msg)
	m, cmd = update(m, msg)
	require.Len(t, m.Core.Editor().Pickers().Get(domain.CategoryLive).Options(), 1)

	msg = execOne(t, cmd)
	require.IsType(t, XtreamsLoadedMsg{}, msg)
	m, cmd = update(m, msg)
	require.Nil(t, cmd)

	require.Equal(t, []string{"GetSettings", "ListPlaylists", "ListXtreams"}, b.order)
	require.Equal(t, "res.example:9000", m.SettingsForm.Value(setResolver))
	require.Equal(t, "http://res.example:9000/xtream/x", m.Core.ServerURL(m.Core.Xtreams()[0]))
	require.False(t, m.booting)
}

func TestBootContinuesWhenSettingsFail(t *testing.T) {
	b := newStubBackend()
	b.failSettings = domain.ErrServerOffline
	m := newTestModel(b, &fakeCopier{})

	m, cmd := update(m, execOne(t, m.Init()))
	require.IsType(t, PlaylistsLoadedMsg{}, execOne(t, cmd))
	require.Equal(t, "", m.SettingsForm.Value(setResolver))
	require.Empty(t, m.StatusMsg)
	require.False(t, m.StatusIsErr)
}

func TestManualSettingsReloadReportsFailure(t *testing.T) {
	b := newStubBackend()
	m := seeded(b)

	m, _ = update(m, SettingsLoadedMsg{Err: domain.ErrServerOffline})
	require.True(t, m.StatusIsErr)
	require.Contains(t, m.StatusMsg, "loading settings")
}

func TestCommandsCarryNoClientDeadline(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{{ID: "1", Name: "News", Mode: domain.ModeTV}}
	m := seeded(b)

	exec(t, m.Init())
	exec(t, LoadPlaylistsCmd(m.Session.Playlists))
	exec(t, LoadXtreamsCmd(m.Session.Xtreams))
	exec(t, SaveSettingsCmd(m.Session.Settings, domain.Settings{}))
	row := console.NewRowDraft(b.playlists[0])
	exec(t, SavePlaylistCmd(m.Session.Playlists, b.playlists[0], row, true))
	exec(t, RefreshXtreamCmd(m.Session.Xtreams, "x", "6"))
	exec(t, ConvertCmd(m.Session.Convert, "http://src/list.m3u", domain.ModeTV, t.TempDir()))

	require.Equal(t, 1, b.calls["Convert"])
	require.Equal(t, 1, b.calls["UpdateXtream"])
	require.Zero(t, b.deadlines)
}

func TestDeletePlaylistNeedsConfirmation(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{{ID: "1", Name: "News", Mode: domain.ModeTV}}
	m := seeded(b)

	m, cmd := press(m, "x")
	require.Nil(t, cmd)
	require.Equal(t, StateConfirmDelete, m.State)

	m, cmd = press(m, "n")
	require.Nil(t, cmd)
	require.Equal(t, StateBrowsing, m.State)
	require.Zero(t, b.calls["DeletePlaylist"])

	m, _ = press(m, "x")
	m, cmd = press(m, "y")
	msg := execOne(t, cmd)
	require.Equal(t, 1, b.calls["DeletePlaylist"])
	require.Equal(t, 1, b.calls["ListPlaylists"])

	m, _ = update(m, msg)
	require.Empty(t, m.Core.Playlists())
	require.Equal(t, "Playlist deleted", m.StatusMsg)
}

func TestSettingsSaveIndicator(t *testing.T) {
	b := newStubBackend()
	m := seeded(b)
	m.Tab = TabSettings
	m.SettingsForm.SetValue(setResolver, "  http://res/ ")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, "saving...", m.SettingsStatus)

	m, second := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, second)

	msg := execOne(t, cmd)
	m, _ = update(m, msg)
	require.Equal(t, "ok", m.SettingsStatus)
	require.Equal(t, "http://res/", b.settings.ResolverBaseURL)
	require.Equal(t, "http://res/", m.SettingsForm.Value(setResolver))
	require.Equal(t, "http://res", m.Core.Base())

	m, _ = update(m, ClearSettingsStatusMsg{Seq: m.settingsSeq})
	require.Empty(t, m.SettingsStatus)
}

func TestEarlierSettingsClearDoesNotHideNewerSave(t *testing.T) {
	b := newStubBackend()
	m := seeded(b)
	m.Tab = TabSettings

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = update(m, execOne(t, cmd))
	require.Equal(t, "ok", m.SettingsStatus)
	first := m.settingsSeq

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, "saving...", m.SettingsStatus)
	m, _ = update(m, ClearSettingsStatusMsg{Seq: first})
	require.Equal(t, "saving...", m.SettingsStatus)

	m, _ = update(m, execOne(t, cmd))
	m, _ = update(m, ClearSettingsStatusMsg{Seq: first})
	require.Equal(t, "ok", m.SettingsStatus)
	m, _ = update(m, ClearSettingsStatusMsg{Seq: m.settingsSeq})
	require.Empty(t, m.SettingsStatus)
}

func TestEarlierStatusClearKeepsNewerStatus(t *testing.T) {
	m := seeded(newStubBackend())

	m, _ = update(m, StatusMsg{Message: "first"})
	first := m.statusSeq
	m, _ = update(m, StatusMsg{Message: "second"})

	m, _ = update(m, ClearStatusMsg{Seq: first})
	require.Equal(t, "second", m.StatusMsg)
	m, _ = update(m, ClearStatusMsg{Seq: m.statusSeq})
	require.Empty(t, m.StatusMsg)
}

func TestAccountSubmitValidationShowsAlert(t *testing.T) {
	b := newStubBackend()
	m := seeded(b)
	m.Tab = TabXtreams

	m, _ = press(m, "n")
	require.True(t, m.AccountFormFocused())

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
	require.Equal(t, StateAlert, m.State)
	require.Equal(t, "Missing fields", m.AlertTitle)
	require.Zero(t, b.calls["CreateXtream"])

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateBrowsing, m.State)
}

func TestEditAccountThenUpdateResetsEditor(t *testing.T) {
	b := newStubBackend()
	b.xtreams = []*domain.XtreamAccount{{ID: "a", Name: "A", Username: "u", Password: "p w", RefreshIntervalHours: 6}}
	m := seeded(b)
	m.Tab = TabXtreams

	m, _ = press(m, "e")
	require.Equal(t, console.Editing("a"), m.Core.Editor().Target())
	require.Equal(t, "p w", m.AccountForm.Value(accPassword))
	require.Equal(t, "6", m.AccountForm.Value(accInterval))

	m.AccountForm.SetValue(accName, "Renamed")
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := execOne(t, cmd)
	require.Equal(t, 1, b.calls["UpdateXtream"])
	require.Zero(t, b.calls["CreateXtream"])
	require.Equal(t, "Renamed", b.xtreamUpdates[0].Draft.Name)

	m, _ = update(m, msg)
	require.True(t, m.Core.Editor().Target().IsCreating())
	require.Equal(t, "", m.AccountForm.Value(accName))
	require.Equal(t, "12", m.AccountForm.Value(accInterval))
	require.False(t, m.AccountFormFocused())
}

func TestPlainReloadKeepsEdit(t *testing.T) {
	b := newStubBackend()
	b.xtreams = []*domain.XtreamAccount{{ID: "a", Name: "A", Username: "u", Password: "p"}}
	m := seeded(b)
	m.Tab = TabXtreams

	m, _ = press(m, "e")
	m.AccountForm.SetValue(accName, "Draft name")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.AccountFormFocused())

	m, cmd := press(m, "r")
	m, _ = update(m, execOne(t, cmd))
	require.Equal(t, console.Editing("a"), m.Core.Editor().Target())
	require.Equal(t, "Draft name", m.Core.Editor().Form.Name)
}

func TestPickerToggleSelectsOfferedPlaylist(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{
		{ID: "1", Name: "News", Mode: domain.ModeTV},
		{ID: "2", Name: "Films", Mode: domain.ModeVideo},
	}
	m := seeded(b)
	m.Tab = TabXtreams

	m, _ = press(m, "n")
	for i := 0; i < 4; i++ {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, 0, m.pickerFocus)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Equal(t, []string{"1"}, m.Core.Editor().Pickers().Get(domain.CategoryLive).Selected())
	require.Empty(t, m.Core.Editor().Pickers().Get(domain.CategoryMovies).Selected())
}

func TestCopyFallbackFailureShowsValue(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{{ID: "7", Name: "News", Mode: domain.ModeTV}}
	m := seeded(b)
	copier := &fakeCopier{err: domain.ErrClipboardUnavailable}
	m.Copier = copier

	m, cmd := press(m, "c")
	m, _ = update(m, execOne(t, cmd))
	require.Equal(t, []string{"http://panel:8000/lists/7.m3u"}, copier.copied)
	require.True(t, m.StatusIsErr)
	require.Contains(t, m.StatusMsg, "http://panel:8000/lists/7.m3u")
}

func TestCopyReportsMethod(t *testing.T) {
	b := newStubBackend()
	b.xtreams = []*domain.XtreamAccount{{ID: "x", Name: "A", Username: "a b", Password: "p@ss"}}
	m := seeded(b)
	m.Tab = TabXtreams
	m.Copier = &fakeCopier{method: clipboard.MethodTerminal}

	m, cmd := press(m, "C")
	m, _ = update(m, execOne(t, cmd))
	require.False(t, m.StatusIsErr)
	require.Contains(t, m.StatusMsg, string(clipboard.MethodTerminal))
	require.Contains(t, m.StatusMsg, "username=a%20b&password=p%40ss")
}

func TestFilterNarrowsRowsOnly(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{
		{ID: "1", Name: "News", Mode: domain.ModeTV},
		{ID: "2", Name: "Films", Mode: domain.ModeVideo},
		{ID: "3", Name: "Sports", Mode: domain.ModeTV},
	}
	m := seeded(b)

	m, _ = press(m, "/")
	m, _ = press(m, "fil")
	require.Equal(t, 1, m.PlaylistList.Len())
	require.Equal(t, "2", m.selectedPlaylist().ID)
	require.Len(t, m.Core.Playlists(), 3)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 3, m.PlaylistList.Len())
}

func TestCreatePlaylistClearsNameAndURL(t *testing.T) {
	b := newStubBackend()
	m := seeded(b)

	m, _ = press(m, "n")
	m.AddForm.SetValue(addName, "Films")
	m.AddForm.SetValue(addURL, "http://src/films.m3u")
	m.AddForm.SetValue(addMode, string(domain.ModeVideo))
	m.AddForm.SetValue(addInterval, "zero")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := execOne(t, cmd)
	require.Equal(t, 12, b.playlists[0].RefreshIntervalHours)
	require.Equal(t, domain.ModeVideo, b.playlists[0].Mode)

	m, _ = update(m, msg)
	require.Empty(t, m.AddForm.Value(addName))
	require.Empty(t, m.AddForm.Value(addURL))
	require.Equal(t, "zero", m.AddForm.Value(addInterval))
	require.Len(t, m.Core.Editor().Pickers().Get(domain.CategorySeries).Options(), 1)
}

func TestRowEditorSaveAndRefresh(t *testing.T) {
	b := newStubBackend()
	b.playlists = []*domain.Playlist{{ID: "1", Name: "News", Mode: domain.ModeTV, RefreshIntervalHours: 6}}
	m := seeded(b)

	m, _ = press(m, "e")
	require.Equal(t, StateRowEdit, m.State)
	require.Equal(t, "6", m.RowForm.Value(rowInterval))

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, StateBrowsing, m.State)
	done := execOne(t, cmd).(MutationDoneMsg)
	require.Equal(t, service.ActionPlaylistRefresh, done.Action)
	require.Equal(t, 1, b.calls["UpdatePlaylist"])
}

func TestAccountRowShowsFullCredentials(t *testing.T) {
	b := newStubBackend()
	b.xtreams = []*domain.XtreamAccount{
		{ID: "a", Name: "Home", Username: "someone.with.a.long.name", Password: "averylongpassword123", RefreshIntervalHours: 12},
		{ID: "b", Name: "Office", Username: "u", Password: "p"},
	}
	m := seeded(b)

	for _, width := range []int{30, 60, 136} {
		row := m.renderXtreamRow(0, false, width)
		require.Contains(t, row, "someone.with.a.long.name")
		require.Contains(t, row, "averylongpassword123")
	}

	row := m.renderXtreamRow(0, true, 200)
	require.Contains(t, row, "http://panel:8000/xtream/a")
}
