package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/service"
)

// LoadSettingsCmd loads the settings record
func LoadSettingsCmd(svc *service.SettingsService) tea.Cmd {
	return func() tea.Msg {
		settings, err := svc.Load(context.Background())
		return SettingsLoadedMsg{Settings: settings, Err: err}
	}
}

// LoadPlaylistsCmd loads the playlist collection
func LoadPlaylistsCmd(svc *service.PlaylistService) tea.Cmd {
	return func() tea.Msg {
		playlists, err := svc.List(context.Background())
		return PlaylistsLoadedMsg{Playlists: playlists, Err: err}
	}
}

// LoadXtreamsCmd loads the account collection
func LoadXtreamsCmd(svc *service.XtreamService) tea.Cmd {
	return func() tea.Msg {
		accounts, err := svc.List(context.Background())
		return XtreamsLoadedMsg{Xtreams: accounts, Err: err}
	}
}

// SaveSettingsCmd replaces the settings record
func SaveSettingsCmd(svc *service.SettingsService, settings domain.Settings) tea.Cmd {
	return func() tea.Msg {
		saved, err := svc.Save(context.Background(), settings)
		return SettingsSavedMsg{Settings: saved, Err: err}
	}
}

// mutationCmd runs one pipeline write and reports its reload
func mutationCmd(action, target string, run func(ctx context.Context) (*console.Reload, error)) tea.Cmd {
	return func() tea.Msg {
		reload, err := run(context.Background())
		return MutationDoneMsg{Action: action, Target: target, Reload: reload, Err: err}
	}
}

// CreatePlaylistCmd validates and creates a playlist
func CreatePlaylistCmd(svc *service.PlaylistService, in console.PlaylistInput) tea.Cmd {
	return mutationCmd(service.ActionPlaylistCreate, "", func(ctx context.Context) (*console.Reload, error) {
		return svc.Create(ctx, in)
	})
}

// SavePlaylistCmd sends a row's edits, optionally forcing a content refresh
func SavePlaylistCmd(svc *service.PlaylistService, p *domain.Playlist, row console.RowDraft, refresh bool) tea.Cmd {
	action := service.ActionPlaylistSave
	if refresh {
		action = service.ActionPlaylistRefresh
	}
	return mutationCmd(action, p.ID, func(ctx context.Context) (*console.Reload, error) {
		if refresh {
			return svc.Refresh(ctx, p, row)
		}
		return svc.Save(ctx, p, row)
	})
}

// DeletePlaylistCmd deletes a playlist
func DeletePlaylistCmd(svc *service.PlaylistService, id string) tea.Cmd {
	return mutationCmd(service.ActionPlaylistDelete, id, func(ctx context.Context) (*console.Reload, error) {
		return svc.Delete(ctx, id)
	})
}

// SaveXtreamCmd creates or updates an account, as decided by target
func SaveXtreamCmd(svc *service.XtreamService, target console.EditingTarget, draft domain.XtreamDraft) tea.Cmd {
	action := service.ActionXtreamUpdate
	if target.IsCreating() {
		action = service.ActionXtreamCreate
	}
	return mutationCmd(action, target.ID(), func(ctx context.Context) (*console.Reload, error) {
		return svc.Save(ctx, target, draft)
	})
}

// RefreshXtreamCmd sets an account's interval and forces a refresh
func RefreshXtreamCmd(svc *service.XtreamService, id, interval string) tea.Cmd {
	return mutationCmd(service.ActionXtreamRefresh, id, func(ctx context.Context) (*console.Reload, error) {
		return svc.Refresh(ctx, id, interval)
	})
}

// DeleteXtreamCmd deletes an account
func DeleteXtreamCmd(svc *service.XtreamService, id string) tea.Cmd {
	return mutationCmd(service.ActionXtreamDelete, id, func(ctx context.Context) (*console.Reload, error) {
		return svc.Delete(ctx, id)
	})
}

// CopyCmd copies a value, falling back to the terminal escape sequence
func CopyCmd(copier Copier, what, value string) tea.Cmd {
	return func() tea.Msg {
		method, err := copier.Copy(value)
		return CopiedMsg{What: what, Value: value, Method: method, Err: err}
	}
}

// OpenCmd hands a stream URL to the external player
func OpenCmd(launcher Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		return PlayerLaunchedMsg{URL: url, Err: launcher.Launch(url)}
	}
}

// ConvertCmd runs a one-shot conversion into dir
func ConvertCmd(svc *service.ConvertService, url string, mode domain.Mode, dir string) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Convert(context.Background(), url, mode, dir)
		return ConvertDoneMsg{Result: res, Err: err}
	}
}

// LoadHistoryCmd reads recent journal entries
func LoadHistoryCmd(pipeline *service.Pipeline, limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := pipeline.History(limit)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// ClearSettingsStatusCmd clears the settings save indicator after a delay
func ClearSettingsStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearSettingsStatusMsg{Seq: seq}
	})
}
