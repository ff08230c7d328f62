package console

import (
	"strconv"
	"strings"

	"github.com/mmcdole/xtconsole/internal/domain"
)

// ParseInterval reads an hour count, falling back to the default refresh
// cadence when the text is not a positive integer.
func ParseInterval(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return domain.DefaultRefreshHours
	}
	return n
}

// PlaylistInput is the add-playlist form as typed
type PlaylistInput struct {
	Name     string
	URL      string
	Mode     domain.Mode
	Interval string
	Resolver string
}

// ValidatePlaylistInput checks the add-playlist form and builds the create payload.
// Name and URL are required.
func ValidatePlaylistInput(in PlaylistInput) (domain.PlaylistCreate, error) {
	name := strings.TrimSpace(in.Name)
	src := strings.TrimSpace(in.URL)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if src == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return domain.PlaylistCreate{}, &domain.ValidationError{
			Fields:  missing,
			Message: "name and url are required",
		}
	}

	mode := in.Mode
	if mode == "" {
		mode = domain.ModeTV
	}

	return domain.PlaylistCreate{
		Name:        name,
		URL:         src,
		Mode:        mode,
		EveryHours:  ParseInterval(in.Interval),
		ResolverURL: strings.TrimSpace(in.Resolver),
	}, nil
}

// RowDraft holds the editable fields of a playlist row
type RowDraft struct {
	Name     string
	URL      string
	Interval string
	Resolver string
}

// NewRowDraft seeds a row editor with the playlist's stored values
func NewRowDraft(p *domain.Playlist) RowDraft {
	return RowDraft{
		Name:     p.Name,
		URL:      p.SourceURL,
		Interval: strconv.Itoa(p.RefreshIntervalHours),
		Resolver: p.ResolverOverrideURL,
	}
}

// Update builds the partial update for a row. Interval and resolver are always
// sent; name and URL only when changed to a non-empty value.
func (r RowDraft) Update(p *domain.Playlist, refresh bool) domain.PlaylistUpdate {
	hours := ParseInterval(r.Interval)
	resolver := strings.TrimSpace(r.Resolver)
	u := domain.PlaylistUpdate{
		EveryHours:  &hours,
		ResolverURL: &resolver,
		Refresh:     refresh,
	}
	if name := strings.TrimSpace(r.Name); name != "" && name != p.Name {
		u.Name = &name
	}
	if src := strings.TrimSpace(r.URL); src != "" && src != p.SourceURL {
		u.URL = &src
	}
	return u
}

// RefreshUpdate is the account row refresh payload: interval plus forced refresh
func RefreshUpdate(interval string) domain.XtreamUpdate {
	hours := ParseInterval(interval)
	return domain.XtreamUpdate{EveryHours: &hours, Refresh: true}
}
