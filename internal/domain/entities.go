package domain

import (
	"fmt"
	"time"
)

// DefaultRefreshHours is the refresh cadence used when an interval is missing or unparsable
const DefaultRefreshHours = 12

// Mode is the format mode of a source playlist
type Mode string

const (
	ModeTV    Mode = "tv"
	ModeVideo Mode = "video"
)

// ParseMode converts user input into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTV, ModeVideo:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want tv or video)", s)
	}
}

// Settings is the backend's process-wide configuration record.
// It has no identity and is replaced wholesale on save.
type Settings struct {
	ResolverBaseURL string // Host prefix used to build shareable stream URLs
	UpstreamURL     string // Upstream proxy (MediaFlow) URL
	APIPassword     string // Upstream proxy password
}

// Playlist is a managed source of stream entries
type Playlist struct {
	ID                   string // Server-assigned, stable
	Name                 string
	SourceURL            string
	Mode                 Mode
	RefreshIntervalHours int
	ResolverOverrideURL  string // Empty means "use the global resolver"
	LastRefresh          int64  // Unix seconds, 0 = never
}

// LastRefreshTime returns the last refresh as a time, zero if never refreshed
func (p *Playlist) LastRefreshTime() time.Time {
	if p.LastRefresh <= 0 {
		return time.Time{}
	}
	return time.Unix(p.LastRefresh, 0)
}

// Category is one of the four catalogs an Xtream account exposes
type Category int

const (
	CategoryLive Category = iota
	CategoryMovies
	CategorySeries
	CategoryMixed
)

// Categories lists every category in display order
func Categories() []Category {
	return []Category{CategoryLive, CategoryMovies, CategorySeries, CategoryMixed}
}

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case CategoryLive:
		return "Live"
	case CategoryMovies:
		return "Movies"
	case CategorySeries:
		return "Series"
	case CategoryMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// EligibleMode returns the playlist mode offered for this category.
// Movies, Series and Mixed all draw from video playlists.
func (c Category) EligibleMode() Mode {
	if c == CategoryLive {
		return ModeTV
	}
	return ModeVideo
}

// CategorySelection holds the playlist-id references of an account, per category.
// References are soft: they may point at playlists that no longer exist.
type CategorySelection struct {
	Live   []string
	Movies []string
	Series []string
	Mixed  []string
}

// Get returns the ids referenced by a category
func (s CategorySelection) Get(c Category) []string {
	switch c {
	case CategoryLive:
		return s.Live
	case CategoryMovies:
		return s.Movies
	case CategorySeries:
		return s.Series
	case CategoryMixed:
		return s.Mixed
	default:
		return nil
	}
}

// Set replaces the ids referenced by a category
func (s *CategorySelection) Set(c Category, ids []string) {
	switch c {
	case CategoryLive:
		s.Live = ids
	case CategoryMovies:
		s.Movies = ids
	case CategorySeries:
		s.Series = ids
	case CategoryMixed:
		s.Mixed = ids
	}
}

// XtreamAccount is a credential-bearing resource aggregating playlists into catalogs
type XtreamAccount struct {
	ID                   string
	Name                 string
	Username             string
	Password             string // Plaintext; the console shows it verbatim
	RefreshIntervalHours int
	LastRefresh          int64 // Unix seconds, 0 = never
	Categories           CategorySelection
}

// LastRefreshTime returns the last refresh as a time, zero if never refreshed
func (x *XtreamAccount) LastRefreshTime() time.Time {
	if x.LastRefresh <= 0 {
		return time.Time{}
	}
	return time.Unix(x.LastRefresh, 0)
}

// PlaylistCreate is the payload for creating a playlist
type PlaylistCreate struct {
	Name        string
	URL         string
	Mode        Mode
	EveryHours  int
	ResolverURL string
}

// PlaylistUpdate is a partial update; nil fields are left untouched by the backend
type PlaylistUpdate struct {
	Name        *string
	URL         *string
	EveryHours  *int
	ResolverURL *string
	Refresh     bool // Ask the backend to re-fetch content now
}

// XtreamDraft is the full payload of an account as edited in the form
type XtreamDraft struct {
	Name       string
	Username   string
	Password   string
	EveryHours int
	Categories CategorySelection
}

// XtreamUpdate is a full (Draft set) or partial update of an account
type XtreamUpdate struct {
	Draft      *XtreamDraft
	EveryHours *int
	Refresh    bool
}
