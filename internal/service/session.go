package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// Session wires every service against one backend
type Session struct {
	Settings  *SettingsService
	Playlists *PlaylistService
	Xtreams   *XtreamService
	Convert   *ConvertService
	Pipeline  *Pipeline

	logger *slog.Logger
}

// NewSession creates the services for a backend sharing one pipeline and journal
func NewSession(backend domain.Backend, journal domain.Journal, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	pipeline := NewPipeline(backend, backend, journal, logger)
	return &Session{
		Settings:  NewSettingsService(backend, pipeline, logger),
		Playlists: NewPlaylistService(backend, pipeline, logger),
		Xtreams:   NewXtreamService(backend, pipeline, logger),
		Convert:   NewConvertService(backend, logger),
		Pipeline:  pipeline,
		logger:    logger,
	}
}

// Boot loads settings, then playlists (resyncing pickers), then accounts into state.
// A settings failure is logged and ignored. Playlist and account failures are
// returned together; a failed step leaves its collection untouched.
func (s *Session) Boot(ctx context.Context, state *console.State) error {
	if settings, err := s.Settings.Load(ctx); err == nil {
		state.ApplySettings(settings)
	}

	var errs []error
	if playlists, err := s.Playlists.List(ctx); err != nil {
		errs = append(errs, err)
	} else {
		state.ApplyPlaylists(playlists)
	}

	if accounts, err := s.Xtreams.List(ctx); err != nil {
		errs = append(errs, err)
	} else {
		state.ApplyXtreams(accounts, false)
	}

	s.logger.Debug("boot complete", "playlists", len(state.Playlists()), "xtreams", len(state.Xtreams()))
	return errors.Join(errs...)
}
