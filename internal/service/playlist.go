package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// PlaylistService provides playlist CRUD. Every write goes through the
// pipeline and yields the reloaded collection.
type PlaylistService struct {
	repo     domain.PlaylistRepository
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(repo domain.PlaylistRepository, pipeline *Pipeline, logger *slog.Logger) *PlaylistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistService{repo: repo, pipeline: pipeline, logger: logger}
}

// List fetches the playlist collection
func (s *PlaylistService) List(ctx context.Context) ([]*domain.Playlist, error) {
	playlists, err := s.repo.ListPlaylists(ctx)
	if err != nil {
		s.logger.Error("failed to fetch playlists", "error", err)
		return nil, err
	}
	s.logger.Debug("fetched playlists", "count", len(playlists))
	return playlists, nil
}

// Create validates the add form and creates a playlist.
// A validation failure sends no request.
func (s *PlaylistService) Create(ctx context.Context, in console.PlaylistInput) (*console.Reload, error) {
	create, err := console.ValidatePlaylistInput(in)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Run(ctx, Mutation{
		Action: ActionPlaylistCreate,
		Target: create.Name,
		Scope:  console.ScopePlaylists,
		Do: func(ctx context.Context) error {
			id, err := s.repo.CreatePlaylist(ctx, create)
			if err != nil {
				return err
			}
			s.logger.Info("created playlist", "playlistID", id, "name", create.Name)
			return nil
		},
	})
}

// Save sends the row's interval and resolver (and changed name/URL) without forcing a refresh
func (s *PlaylistService) Save(ctx context.Context, p *domain.Playlist, row console.RowDraft) (*console.Reload, error) {
	return s.update(ctx, ActionPlaylistSave, p.ID, row.Update(p, false))
}

// Refresh sends the same update as Save and asks the backend to re-fetch content now
func (s *PlaylistService) Refresh(ctx context.Context, p *domain.Playlist, row console.RowDraft) (*console.Reload, error) {
	return s.update(ctx, ActionPlaylistRefresh, p.ID, row.Update(p, true))
}

// Update applies an arbitrary partial update
func (s *PlaylistService) Update(ctx context.Context, id string, u domain.PlaylistUpdate) (*console.Reload, error) {
	action := ActionPlaylistSave
	if u.Refresh {
		action = ActionPlaylistRefresh
	}
	return s.update(ctx, action, id, u)
}

func (s *PlaylistService) update(ctx context.Context, action, id string, u domain.PlaylistUpdate) (*console.Reload, error) {
	return s.pipeline.Run(ctx, Mutation{
		Action: action,
		Target: id,
		Scope:  console.ScopePlaylists,
		Do: func(ctx context.Context) error {
			return s.repo.UpdatePlaylist(ctx, id, u)
		},
	})
}

// Delete removes a playlist. Confirmation is the caller's job.
func (s *PlaylistService) Delete(ctx context.Context, id string) (*console.Reload, error) {
	return s.pipeline.Run(ctx, Mutation{
		Action: ActionPlaylistDelete,
		Target: id,
		Scope:  console.ScopePlaylists,
		Do: func(ctx context.Context) error {
			return s.repo.DeletePlaylist(ctx, id)
		},
	})
}
