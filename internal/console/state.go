package console

import (
	"github.com/mmcdole/xtconsole/internal/domain"
)

// Scope names the collection a mutation affects
type Scope int

const (
	ScopePlaylists Scope = iota
	ScopeXtreams
	ScopeSettings
)

func (s Scope) String() string {
	switch s {
	case ScopePlaylists:
		return "playlists"
	case ScopeXtreams:
		return "xtreams"
	case ScopeSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Reload is the canonical collection fetched after a successful mutation.
// Stale is set when the mutation was applied but the fetch failed; the
// collections are then empty and must not replace the current ones.
type Reload struct {
	Scope     Scope
	Playlists []*domain.Playlist
	Xtreams   []*domain.XtreamAccount
	Stale     bool
}

// CategoryDetail lists the playlist labels an account references in one category
type CategoryDetail struct {
	Category domain.Category
	Labels   []string
}

// State is the console's single owned view of server truth plus the account
// form. Collections are only ever replaced wholesale.
type State struct {
	origin    string
	settings  domain.Settings
	playlists []*domain.Playlist
	xtreams   []*domain.XtreamAccount
	editor    *Editor
}

// NewState creates an empty state for a backend at origin
func NewState(origin string) *State {
	return &State{
		origin: origin,
		editor: NewEditor(),
	}
}

// Origin returns the backend origin
func (s *State) Origin() string { return s.origin }

// Settings returns the last loaded or saved settings
func (s *State) Settings() domain.Settings { return s.settings }

// Playlists returns the current playlist collection
func (s *State) Playlists() []*domain.Playlist { return s.playlists }

// Xtreams returns the current account collection
func (s *State) Xtreams() []*domain.XtreamAccount { return s.xtreams }

// Editor returns the account form
func (s *State) Editor() *Editor { return s.editor }

// ApplySettings records the settings used for URL construction
func (s *State) ApplySettings(settings domain.Settings) {
	s.settings = settings
}

// ApplyPlaylists replaces the playlist collection and resyncs the category
// pickers in the same step.
func (s *State) ApplyPlaylists(items []*domain.Playlist) {
	if items == nil {
		items = []*domain.Playlist{}
	}
	s.playlists = items
	s.editor.Pickers().Sync(items)
}

// ApplyXtreams replaces the account collection. After a mutation the
// editor returns to Creating; a plain reload keeps an in-progress edit
// unless the edited account is gone.
func (s *State) ApplyXtreams(items []*domain.XtreamAccount, afterMutation bool) {
	if items == nil {
		items = []*domain.XtreamAccount{}
	}
	s.xtreams = items

	target := s.editor.Target()
	if afterMutation || (!target.IsCreating() && s.FindXtream(target.ID()) == nil) {
		s.editor.Reset()
	}
}

// ApplyReload installs the collection fetched after a mutation. A stale
// account reload still returns the editor to Creating, since the write landed.
func (s *State) ApplyReload(r *Reload) {
	if r == nil {
		return
	}
	switch r.Scope {
	case ScopePlaylists:
		if !r.Stale {
			s.ApplyPlaylists(r.Playlists)
		}
	case ScopeXtreams:
		if r.Stale {
			s.editor.Reset()
			return
		}
		s.ApplyXtreams(r.Xtreams, true)
	}
}

// FindPlaylist returns the playlist with id, or nil
func (s *State) FindPlaylist(id string) *domain.Playlist {
	for _, p := range s.playlists {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindXtream returns the account with id, or nil
func (s *State) FindXtream(id string) *domain.XtreamAccount {
	for _, x := range s.xtreams {
		if x.ID == id {
			return x
		}
	}
	return nil
}

// PlaylistName resolves a playlist reference, falling back to the raw id
func (s *State) PlaylistName(id string) string {
	if p := s.FindPlaylist(id); p != nil && p.Name != "" {
		return p.Name
	}
	return id
}

// CategoryDetails resolves every category reference of an account to a label
func (s *State) CategoryDetails(x *domain.XtreamAccount) []CategoryDetail {
	details := make([]CategoryDetail, 0, 4)
	for _, c := range domain.Categories() {
		ids := x.Categories.Get(c)
		labels := make([]string, 0, len(ids))
		for _, id := range ids {
			labels = append(labels, s.PlaylistName(id))
		}
		details = append(details, CategoryDetail{Category: c, Labels: labels})
	}
	return details
}

// Base is the canonical host prefix for account URLs under current settings
func (s *State) Base() string {
	return CanonicalBase(s.settings.ResolverBaseURL, s.origin)
}

// ServerURL builds an account's server URL from the current settings
func (s *State) ServerURL(x *domain.XtreamAccount) string {
	return ServerURL(s.Base(), x.ID)
}

// FullURL builds an account's playback URL from the current settings
func (s *State) FullURL(x *domain.XtreamAccount) string {
	return FullURL(s.Base(), x.ID, x.Username, x.Password)
}

// PlaylistLink builds a playlist's retrieval URL
func (s *State) PlaylistLink(p *domain.Playlist) string {
	return PlaylistLink(s.origin, p.ID)
}
