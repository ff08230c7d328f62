package domain

import (
	"context"
)

// SettingsRepository reads and replaces the backend settings record
type SettingsRepository interface {
	// GetSettings returns the current settings; missing fields are empty
	GetSettings(ctx context.Context) (Settings, error)

	// SaveSettings replaces the whole record
	SaveSettings(ctx context.Context, s Settings) error
}

// PlaylistRepository provides access to playlist resources
type PlaylistRepository interface {
	// ListPlaylists returns the canonical playlist collection
	ListPlaylists(ctx context.Context) ([]*Playlist, error)

	// CreatePlaylist creates a playlist and returns its server-issued id
	CreatePlaylist(ctx context.Context, p PlaylistCreate) (string, error)

	// UpdatePlaylist applies a partial update
	UpdatePlaylist(ctx context.Context, id string, u PlaylistUpdate) error

	// DeletePlaylist removes a playlist
	DeletePlaylist(ctx context.Context, id string) error
}

// XtreamRepository provides access to Xtream account resources
type XtreamRepository interface {
	ListXtreams(ctx context.Context) ([]*XtreamAccount, error)
	CreateXtream(ctx context.Context, d XtreamDraft) (string, error)
	UpdateXtream(ctx context.Context, id string, u XtreamUpdate) error
	DeleteXtream(ctx context.Context, id string) error
}

// ConvertRepository runs a one-shot playlist conversion on the backend
type ConvertRepository interface {
	// Convert returns the converted playlist file contents
	Convert(ctx context.Context, url string, mode Mode) ([]byte, error)
}

// Backend combines every endpoint group the console consumes
type Backend interface {
	SettingsRepository
	PlaylistRepository
	XtreamRepository
	ConvertRepository
}
