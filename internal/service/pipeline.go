package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// Journal action names
const (
	ActionSettingsSave    = "settings.save"
	ActionPlaylistCreate  = "playlist.create"
	ActionPlaylistSave    = "playlist.save"
	ActionPlaylistRefresh = "playlist.refresh"
	ActionPlaylistDelete  = "playlist.delete"
	ActionXtreamCreate    = "xtream.create"
	ActionXtreamUpdate    = "xtream.update"
	ActionXtreamRefresh   = "xtream.refresh"
	ActionXtreamDelete    = "xtream.delete"
)

// Mutation is one operator write against the backend
type Mutation struct {
	Action string // journal action, e.g. "playlist.create"
	Target string // resource id or name
	Scope  console.Scope
	Do     func(ctx context.Context) error
}

// Pipeline runs mutations and then reloads the affected collection.
// The view is never patched locally: every successful write is followed by a fetch.
type Pipeline struct {
	playlists domain.PlaylistRepository
	xtreams   domain.XtreamRepository
	journal   domain.Journal
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline creates a mutate-then-reload pipeline
func NewPipeline(
	playlists domain.PlaylistRepository,
	xtreams domain.XtreamRepository,
	journal domain.Journal,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if journal == nil {
		journal = domain.NoOpJournal{}
	}
	return &Pipeline{
		playlists: playlists,
		xtreams:   xtreams,
		journal:   journal,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes the mutation. On failure nothing is reloaded and the error is
// returned as is. On success the scope's collection is fetched and returned.
// If that fetch fails, Run returns a stale Reload together with the error.
func (p *Pipeline) Run(ctx context.Context, m Mutation) (*console.Reload, error) {
	if err := m.Do(ctx); err != nil {
		p.logger.Error("mutation failed", "action", m.Action, "target", m.Target, "error", err)
		p.record(m, err)
		return nil, err
	}
	p.logger.Info("mutation applied", "action", m.Action, "target", m.Target)
	p.record(m, nil)

	reload, err := p.Reload(ctx, m.Scope)
	if err != nil {
		stale := &console.Reload{Scope: m.Scope, Stale: true}
		return stale, fmt.Errorf("%s applied but reload failed: %w", m.Action, err)
	}
	return reload, nil
}

// Reload fetches the canonical collection of a scope
func (p *Pipeline) Reload(ctx context.Context, scope console.Scope) (*console.Reload, error) {
	r := &console.Reload{Scope: scope}
	switch scope {
	case console.ScopePlaylists:
		items, err := p.playlists.ListPlaylists(ctx)
		if err != nil {
			p.logger.Error("failed to reload playlists", "error", err)
			return nil, err
		}
		p.logger.Debug("reloaded playlists", "count", len(items))
		r.Playlists = items
	case console.ScopeXtreams:
		items, err := p.xtreams.ListXtreams(ctx)
		if err != nil {
			p.logger.Error("failed to reload xtreams", "error", err)
			return nil, err
		}
		p.logger.Debug("reloaded xtreams", "count", len(items))
		r.Xtreams = items
	}
	return r, nil
}

// History returns the most recent journal entries, newest first
func (p *Pipeline) History(limit int) ([]domain.JournalEntry, error) {
	return p.journal.Recent(limit)
}

func (p *Pipeline) record(m Mutation, err error) {
	entry := domain.JournalEntry{
		At:     p.now(),
		Action: m.Action,
		Target: m.Target,
		OK:     err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if jerr := p.journal.Record(entry); jerr != nil {
		p.logger.Warn("failed to record journal entry", "action", m.Action, "error", jerr)
	}
}
