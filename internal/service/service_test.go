package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	backend   *fakeBackend
	journal   *memJournal
	pipeline  *Pipeline
	settings  *SettingsService
	playlists *PlaylistService
	xtreams   *XtreamService
	convert   *ConvertService
}

func newFixture() *fixture {
	b := newFakeBackend()
	j := &memJournal{}
	p := NewPipeline(b, b, j, nil)
	return &fixture{
		backend:   b,
		journal:   j,
		pipeline:  p,
		settings:  NewSettingsService(b, p, nil),
		playlists: NewPlaylistService(b, p, nil),
		xtreams:   NewXtreamService(b, p, nil),
		convert:   NewConvertService(b, nil),
	}
}

func TestCreatePlaylistValidationSendsNothing(t *testing.T) {
	f := newFixture()
	state := console.NewState("http://h")
	state.ApplyPlaylists([]*domain.Playlist{{ID: "1", Name: "A", Mode: domain.ModeTV}})

	reload, err := f.playlists.Create(context.Background(), console.PlaylistInput{Name: "", URL: "http://src"})
	require.True(t, domain.IsValidation(err))
	require.Nil(t, reload)
	require.Zero(t, f.backend.total())
	require.Empty(t, f.journal.entries)

	state.ApplyReload(reload)
	require.Len(t, state.Playlists(), 1)
}

func TestCreatePlaylistReloadsAndResyncs(t *testing.T) {
	f := newFixture()
	state := console.NewState("http://h")

	reload, err := f.playlists.Create(context.Background(), console.PlaylistInput{
		Name: "Films", URL: "http://src", Mode: domain.ModeVideo, Interval: "",
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.backend.calls["CreatePlaylist"])
	require.Equal(t, 1, f.backend.calls["ListPlaylists"])
	require.Equal(t, 12, f.backend.playlists[0].RefreshIntervalHours)

	state.ApplyReload(reload)
	require.Len(t, state.Playlists(), 1)
	require.Len(t, state.Editor().Pickers().Get(domain.CategoryMixed).Options(), 1)
	require.Empty(t, state.Editor().Pickers().Get(domain.CategoryLive).Options())

	require.Len(t, f.journal.entries, 1)
	require.Equal(t, "playlist.create", f.journal.entries[0].Action)
	require.True(t, f.journal.entries[0].OK)
}

func TestPlaylistSaveAndRefreshDifferOnlyInFlag(t *testing.T) {
	f := newFixture()
	p := &domain.Playlist{ID: "7", Name: "N", SourceURL: "http://a", RefreshIntervalHours: 6}
	f.backend.playlists = []*domain.Playlist{p}
	row := console.NewRowDraft(p)
	row.Interval = "3"

	_, err := f.playlists.Save(context.Background(), p, row)
	require.NoError(t, err)
	_, err = f.playlists.Refresh(context.Background(), p, row)
	require.NoError(t, err)

	require.Len(t, f.backend.plUpd, 2)
	save, refresh := f.backend.plUpd[0], f.backend.plUpd[1]
	require.False(t, save.Refresh)
	require.True(t, refresh.Refresh)
	save.Refresh = true
	require.Equal(t, refresh, save)
	require.Equal(t, 3, *save.EveryHours)
	require.Equal(t, "7", f.backend.lastID)
}

func TestMutationFailureSkipsReload(t *testing.T) {
	f := newFixture()
	f.backend.failWith = &domain.RemoteRequestError{Status: 500, Message: "boom"}

	reload, err := f.playlists.Delete(context.Background(), "1")
	require.EqualError(t, err, "boom")
	require.Nil(t, reload)
	require.Zero(t, f.backend.calls["ListPlaylists"])

	require.Len(t, f.journal.entries, 1)
	require.False(t, f.journal.entries[0].OK)
	require.Equal(t, "boom", f.journal.entries[0].Error)
}

func TestReloadFailureIsReported(t *testing.T) {
	f := newFixture()
	f.backend.failList = domain.ErrServerOffline

	reload, err := f.xtreams.Delete(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrServerOffline)
	require.Contains(t, err.Error(), "applied but reload failed")
	require.True(t, f.journal.entries[0].OK)
	require.Equal(t, &console.Reload{Scope: console.ScopeXtreams, Stale: true}, reload)
}

func TestCreateThenFailedReloadStillResetsEditor(t *testing.T) {
	f := newFixture()
	state := console.NewState("http://h")
	ed := state.Editor()
	ed.Form.Name = "A"
	ed.Form.Username = "u"
	ed.Form.Password = "p"

	f.backend.failList = domain.ErrServerOffline
	reload, err := f.xtreams.Submit(context.Background(), ed)
	require.Error(t, err)
	state.ApplyReload(reload)

	require.True(t, ed.Target().IsCreating())
	require.Empty(t, ed.Form.Name)
	require.Empty(t, ed.Form.Username)

	// the blank form cannot be resubmitted into a second account
	f.backend.failList = nil
	_, err = f.xtreams.Submit(context.Background(), ed)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, 1, f.backend.calls["CreateXtream"])
	require.Len(t, f.backend.xtreams, 1)
}

func TestXtreamSaveCreatingIssuesOneCreate(t *testing.T) {
	f := newFixture()
	draft := domain.XtreamDraft{Name: "A", Username: "u", Password: "p", EveryHours: 12}

	reload, err := f.xtreams.Save(context.Background(), console.Creating(), draft)
	require.NoError(t, err)
	require.Equal(t, 1, f.backend.calls["CreateXtream"])
	require.Zero(t, f.backend.calls["UpdateXtream"])
	require.Equal(t, console.ScopeXtreams, reload.Scope)
	require.Len(t, reload.Xtreams, 1)
}

func TestXtreamSaveEditingIssuesOneScopedUpdate(t *testing.T) {
	f := newFixture()
	draft := domain.XtreamDraft{Name: "A", Username: "u", Password: "p", EveryHours: 12}

	_, err := f.xtreams.Save(context.Background(), console.Editing("x1"), draft)
	require.NoError(t, err)
	require.Zero(t, f.backend.calls["CreateXtream"])
	require.Equal(t, 1, f.backend.calls["UpdateXtream"])
	require.Equal(t, "x1", f.backend.lastID)
	require.Equal(t, &draft, f.backend.updates[0].Draft)
}

func TestXtreamSubmitResetsEditorOnlyOnSuccess(t *testing.T) {
	f := newFixture()
	a := &domain.XtreamAccount{ID: "a", Name: "A", Username: "u", Password: "p", RefreshIntervalHours: 12}
	f.backend.xtreams = []*domain.XtreamAccount{a}

	state := console.NewState("http://h")
	state.ApplyXtreams([]*domain.XtreamAccount{a}, false)
	state.Editor().Edit(a)
	state.Editor().Form.Name = "Renamed"

	f.backend.failWith = errors.New("rejected")
	reload, err := f.xtreams.Submit(context.Background(), state.Editor())
	require.Error(t, err)
	state.ApplyReload(reload)
	require.Equal(t, console.Editing("a"), state.Editor().Target())
	require.Equal(t, "Renamed", state.Editor().Form.Name)

	f.backend.failWith = nil
	reload, err = f.xtreams.Submit(context.Background(), state.Editor())
	require.NoError(t, err)
	state.ApplyReload(reload)
	require.True(t, state.Editor().Target().IsCreating())
	require.Equal(t, 2, f.backend.calls["UpdateXtream"])
}

func TestXtreamSubmitValidationSendsNothing(t *testing.T) {
	f := newFixture()
	ed := console.NewEditor()
	ed.Form.Name = "A"

	_, err := f.xtreams.Submit(context.Background(), ed)
	require.True(t, domain.IsValidation(err))
	require.Zero(t, f.backend.total())
}

func TestXtreamRefresh(t *testing.T) {
	f := newFixture()

	_, err := f.xtreams.Refresh(context.Background(), "x2", "nope")
	require.NoError(t, err)
	u := f.backend.updates[0]
	require.Nil(t, u.Draft)
	require.True(t, u.Refresh)
	require.Equal(t, 12, *u.EveryHours)
}

func TestSettingsSaveTrimsURLs(t *testing.T) {
	f := newFixture()

	saved, err := f.settings.Save(context.Background(), domain.Settings{
		ResolverBaseURL: "  http://r/ ",
		UpstreamURL:     " http://m ",
		APIPassword:     " secret ",
	})
	require.NoError(t, err)
	require.Equal(t, domain.Settings{
		ResolverBaseURL: "http://r/",
		UpstreamURL:     "http://m",
		APIPassword:     " secret ",
	}, saved)
	require.Equal(t, saved, f.backend.settings)
	require.Zero(t, f.backend.calls["ListPlaylists"])
}

func TestSettingsLoadFailure(t *testing.T) {
	f := newFixture()
	f.backend.failList = domain.ErrServerOffline

	_, err := f.settings.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestConvertSavesFile(t *testing.T) {
	f := newFixture()
	f.backend.converted = []byte("#EXTM3U\n#EXTINF:-1 group-title=\"G\",One\nhttp://s/1\n")
	dir := filepath.Join(t.TempDir(), "downloads")

	res, err := f.convert.Convert(context.Background(), " http://src ", domain.ModeTV, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ConvertFileName), res.Path)
	require.Equal(t, 1, res.Summary.Len())

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, f.backend.converted, data)
}

func TestConvertRequiresURL(t *testing.T) {
	f := newFixture()

	_, err := f.convert.Convert(context.Background(), "  ", domain.ModeTV, t.TempDir())
	require.True(t, domain.IsValidation(err))
	require.Zero(t, f.backend.total())
}

func TestConvertSurfacesServerText(t *testing.T) {
	f := newFixture()
	f.backend.failWith = &domain.RemoteRequestError{Status: 502, Message: "upstream timeout"}

	_, err := f.convert.Convert(context.Background(), "http://src", domain.ModeVideo, t.TempDir())
	require.EqualError(t, err, "upstream timeout")
}

func TestSessionBootOrder(t *testing.T) {
	b := newFakeBackend()
	b.settings = domain.Settings{ResolverBaseURL: "res.example"}
	b.playlists = []*domain.Playlist{{ID: "1", Name: "News", Mode: domain.ModeTV}}
	b.xtreams = []*domain.XtreamAccount{{ID: "x", Categories: domain.CategorySelection{Live: []string{"1", "42"}}}}
	session := NewSession(b, nil, nil)

	state := console.NewState("http://h")
	require.NoError(t, session.Boot(context.Background(), state))

	require.Equal(t, "http://res.example/xtream/x", state.ServerURL(state.Xtreams()[0]))
	require.Len(t, state.Editor().Pickers().Get(domain.CategoryLive).Options(), 1)
	require.Equal(t, []string{"News", "42"}, state.CategoryDetails(state.Xtreams()[0])[0].Labels)
}

func TestSessionBootSettingsSoftFail(t *testing.T) {
	b := newFakeBackend()
	b.failList = domain.ErrServerOffline
	session := NewSession(b, domain.NoOpJournal{}, nil)

	state := console.NewState("http://h")
	err := session.Boot(context.Background(), state)
	require.ErrorIs(t, err, domain.ErrServerOffline)
	require.Equal(t, 1, b.calls["GetSettings"])
	require.Equal(t, 1, b.calls["ListPlaylists"])
	require.Equal(t, 1, b.calls["ListXtreams"])
	require.Equal(t, domain.Settings{}, state.Settings())
}
