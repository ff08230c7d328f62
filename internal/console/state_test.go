package console

import (
	"testing"

	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestApplyPlaylistsResyncsPickers(t *testing.T) {
	s := NewState("http://h")
	s.ApplyPlaylists([]*domain.Playlist{pl("1", "News", domain.ModeTV)})
	s.Editor().Pickers().Get(domain.CategoryLive).Toggle("1")

	steps := [][]*domain.Playlist{
		{pl("1", "News", domain.ModeTV), pl("2", "Films", domain.ModeVideo)},
		{pl("2", "Films", domain.ModeVideo)},
		{},
		{pl("5", "Late", domain.ModeTV), pl("6", "Cinema", domain.ModeVideo)},
	}
	for _, lists := range steps {
		s.ApplyPlaylists(lists)
		want := OptionSets(lists)
		for _, c := range domain.Categories() {
			require.Equal(t, optionIDs(want[c]), optionIDs(s.Editor().Pickers().Get(c).Options()))
		}
	}
	require.Empty(t, s.Editor().Pickers().Get(domain.CategoryLive).Selected())
}

func TestApplyPlaylistsNilIsEmpty(t *testing.T) {
	s := NewState("http://h")
	s.ApplyPlaylists(nil)
	require.NotNil(t, s.Playlists())
	require.Empty(t, s.Playlists())
}

func TestApplyXtreamsAfterMutationResetsEditor(t *testing.T) {
	s := NewState("http://h")
	a := &domain.XtreamAccount{ID: "a", Name: "A", Username: "u", Password: "p"}
	s.ApplyXtreams([]*domain.XtreamAccount{a}, false)
	s.Editor().Edit(a)

	s.ApplyXtreams([]*domain.XtreamAccount{a}, false)
	require.Equal(t, Editing("a"), s.Editor().Target())

	s.ApplyReload(&Reload{Scope: ScopeXtreams, Xtreams: []*domain.XtreamAccount{a}})
	require.True(t, s.Editor().Target().IsCreating())
}

func TestStaleReloadKeepsCollections(t *testing.T) {
	s := NewState("http://h")
	a := &domain.XtreamAccount{ID: "a", Name: "A", Username: "u", Password: "p"}
	s.ApplyPlaylists([]*domain.Playlist{pl("1", "News", domain.ModeTV)})
	s.ApplyXtreams([]*domain.XtreamAccount{a}, false)
	s.Editor().Edit(a)

	s.ApplyReload(&Reload{Scope: ScopePlaylists, Stale: true})
	require.Len(t, s.Playlists(), 1)
	require.Equal(t, Editing("a"), s.Editor().Target())

	s.ApplyReload(&Reload{Scope: ScopeXtreams, Stale: true})
	require.Len(t, s.Xtreams(), 1)
	require.True(t, s.Editor().Target().IsCreating())
	require.Empty(t, s.Editor().Form.Name)
}

func TestApplyXtreamsResetsWhenEditedAccountVanishes(t *testing.T) {
	s := NewState("http://h")
	a := &domain.XtreamAccount{ID: "a", Name: "A", Username: "u", Password: "p"}
	s.ApplyXtreams([]*domain.XtreamAccount{a}, false)
	s.Editor().Edit(a)

	s.ApplyXtreams(nil, false)
	require.True(t, s.Editor().Target().IsCreating())
}

func TestDanglingReferenceShowsRawID(t *testing.T) {
	s := NewState("http://h")
	s.ApplyPlaylists([]*domain.Playlist{pl("1", "News", domain.ModeTV)})
	x := &domain.XtreamAccount{
		ID: "x",
		Categories: domain.CategorySelection{
			Live:   []string{"1", "42"},
			Movies: []string{"42"},
		},
	}

	details := s.CategoryDetails(x)
	require.Len(t, details, 4)
	require.Equal(t, domain.CategoryLive, details[0].Category)
	require.Equal(t, []string{"News", "42"}, details[0].Labels)
	require.Equal(t, []string{"42"}, details[1].Labels)
	require.Empty(t, details[3].Labels)
}

func TestStateURLsFollowSettings(t *testing.T) {
	s := NewState("https://h/")
	x := &domain.XtreamAccount{ID: "7", Username: "a b", Password: "p@ss"}

	require.Equal(t, "https://h/xtream/7", s.ServerURL(x))

	s.ApplySettings(domain.Settings{ResolverBaseURL: "example.com"})
	require.Equal(t, "http://example.com/xtream/7", s.ServerURL(x))
	require.Contains(t, s.FullURL(x), "username=a%20b&password=p%40ss")

	require.Equal(t, "https://h/lists/9.m3u", s.PlaylistLink(pl("9", "n", domain.ModeTV)))
}
