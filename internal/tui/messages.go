package tui

import (
	"github.com/mmcdole/xtconsole/internal/clipboard"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StatusMsg displays a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message if no newer status replaced it
type ClearStatusMsg struct {
	Seq int
}

// SettingsLoadedMsg carries the settings record. Err is set when the load
// failed; boot continues either way.
type SettingsLoadedMsg struct {
	Settings domain.Settings
	Err      error
}

// PlaylistsLoadedMsg carries a fetched playlist collection
type PlaylistsLoadedMsg struct {
	Playlists []*domain.Playlist
	Err       error
}

// XtreamsLoadedMsg carries a fetched account collection
type XtreamsLoadedMsg struct {
	Xtreams []*domain.XtreamAccount
	Err     error
}

// SettingsSavedMsg signals the end of a settings save
type SettingsSavedMsg struct {
	Settings domain.Settings
	Err      error
}

// ClearSettingsStatusMsg clears the settings tab's save indicator if no
// newer save has started since
type ClearSettingsStatusMsg struct {
	Seq int
}

// MutationDoneMsg signals the end of a playlist or account write.
// Reload is the canonical collection fetched afterwards, nil when the write
// failed and stale when the write landed but the fetch failed.
type MutationDoneMsg struct {
	Action string
	Target string
	Reload *console.Reload
	Err    error
}

// CopiedMsg reports a clipboard copy and which path carried it
type CopiedMsg struct {
	What   string
	Value  string
	Method clipboard.Method
	Err    error
}

// PlayerLaunchedMsg signals that a stream URL was handed to the player
type PlayerLaunchedMsg struct {
	URL string
	Err error
}

// ConvertDoneMsg signals the end of a one-shot conversion
type ConvertDoneMsg struct {
	Result *service.ConvertResult
	Err    error
}

// HistoryLoadedMsg carries recent journal entries
type HistoryLoadedMsg struct {
	Entries []domain.JournalEntry
	Err     error
}
