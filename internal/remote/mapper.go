package remote

import "github.com/mmcdole/xtconsole/internal/domain"

func mapSettings(d settingsDTO) domain.Settings {
	return domain.Settings{
		ResolverBaseURL: d.StreamResolverURL,
		UpstreamURL:     d.MediaflowURL,
		APIPassword:     d.APIPassword,
	}
}

func settingsToDTO(s domain.Settings) settingsDTO {
	return settingsDTO{
		StreamResolverURL: s.ResolverBaseURL,
		MediaflowURL:      s.UpstreamURL,
		APIPassword:       s.APIPassword,
	}
}

func mapPlaylist(d playlistDTO) *domain.Playlist {
	p := &domain.Playlist{
		ID:                   d.ID,
		Name:                 d.Name,
		SourceURL:            d.URL,
		Mode:                 domain.Mode(d.Mode),
		RefreshIntervalHours: d.EveryHours,
		ResolverOverrideURL:  d.ResolverURL,
	}
	if d.LastRefresh != nil {
		p.LastRefresh = *d.LastRefresh
	}
	return p
}

func mapPlaylists(items []playlistDTO) []*domain.Playlist {
	out := make([]*domain.Playlist, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		out = append(out, mapPlaylist(it))
	}
	return out
}

func playlistCreateToDTO(p domain.PlaylistCreate) playlistCreateDTO {
	return playlistCreateDTO{
		Name:        p.Name,
		URL:         p.URL,
		Mode:        string(p.Mode),
		EveryHours:  p.EveryHours,
		ResolverURL: p.ResolverURL,
	}
}

func playlistUpdateToDTO(u domain.PlaylistUpdate) playlistUpdateDTO {
	return playlistUpdateDTO{
		Name:        u.Name,
		URL:         u.URL,
		EveryHours:  u.EveryHours,
		ResolverURL: u.ResolverURL,
		Refresh:     u.Refresh,
	}
}

func mapXtream(d xtreamDTO) *domain.XtreamAccount {
	x := &domain.XtreamAccount{
		ID:                   d.ID,
		Name:                 d.Name,
		Username:             d.Username,
		Password:             d.Password,
		RefreshIntervalHours: d.EveryHours,
		Categories: domain.CategorySelection{
			Live:   nonNil(d.LiveListIDs),
			Movies: nonNil(d.MovieListIDs),
			Series: nonNil(d.SeriesListIDs),
			Mixed:  nonNil(d.MixedListIDs),
		},
	}
	if d.LastRefresh != nil {
		x.LastRefresh = *d.LastRefresh
	}
	return x
}

func mapXtreams(items []xtreamDTO) []*domain.XtreamAccount {
	out := make([]*domain.XtreamAccount, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		out = append(out, mapXtream(it))
	}
	return out
}

func xtreamDraftToDTO(d domain.XtreamDraft) xtreamWriteDTO {
	return xtreamWriteDTO{
		Name:          d.Name,
		Username:      d.Username,
		Password:      d.Password,
		EveryHours:    d.EveryHours,
		LiveListIDs:   nonNil(d.Categories.Live),
		MovieListIDs:  nonNil(d.Categories.Movies),
		SeriesListIDs: nonNil(d.Categories.Series),
		MixedListIDs:  nonNil(d.Categories.Mixed),
	}
}

// xtreamUpdateToBody picks the full or partial wire shape
func xtreamUpdateToBody(u domain.XtreamUpdate) any {
	if u.Draft != nil {
		body := xtreamDraftToDTO(*u.Draft)
		body.Refresh = u.Refresh
		return body
	}
	return xtreamPatchDTO{EveryHours: u.EveryHours, Refresh: u.Refresh}
}

// nonNil keeps empty id lists serialized as [] rather than null
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
