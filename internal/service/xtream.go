package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// XtreamService provides Xtream account CRUD
type XtreamService struct {
	repo     domain.XtreamRepository
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewXtreamService creates a new account service
func NewXtreamService(repo domain.XtreamRepository, pipeline *Pipeline, logger *slog.Logger) *XtreamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &XtreamService{repo: repo, pipeline: pipeline, logger: logger}
}

// List fetches the account collection
func (s *XtreamService) List(ctx context.Context) ([]*domain.XtreamAccount, error) {
	accounts, err := s.repo.ListXtreams(ctx)
	if err != nil {
		s.logger.Error("failed to fetch xtreams", "error", err)
		return nil, err
	}
	s.logger.Debug("fetched xtreams", "count", len(accounts))
	return accounts, nil
}

// Save creates or updates an account depending only on target.
// This is the one place that decides between the two calls.
func (s *XtreamService) Save(ctx context.Context, target console.EditingTarget, draft domain.XtreamDraft) (*console.Reload, error) {
	if target.IsCreating() {
		return s.pipeline.Run(ctx, Mutation{
			Action: ActionXtreamCreate,
			Target: draft.Name,
			Scope:  console.ScopeXtreams,
			Do: func(ctx context.Context) error {
				id, err := s.repo.CreateXtream(ctx, draft)
				if err != nil {
					return err
				}
				s.logger.Info("created xtream", "xtreamID", id, "name", draft.Name)
				return nil
			},
		})
	}

	id := target.ID()
	return s.pipeline.Run(ctx, Mutation{
		Action: ActionXtreamUpdate,
		Target: id,
		Scope:  console.ScopeXtreams,
		Do: func(ctx context.Context) error {
			return s.repo.UpdateXtream(ctx, id, domain.XtreamUpdate{Draft: &draft})
		},
	})
}

// Submit validates the editor's form and saves it against the editor's target.
// A validation failure sends no request.
func (s *XtreamService) Submit(ctx context.Context, ed *console.Editor) (*console.Reload, error) {
	draft, err := ed.Draft()
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, ed.Target(), draft)
}

// Refresh updates the interval and forces a content refresh
func (s *XtreamService) Refresh(ctx context.Context, id, interval string) (*console.Reload, error) {
	return s.pipeline.Run(ctx, Mutation{
		Action: ActionXtreamRefresh,
		Target: id,
		Scope:  console.ScopeXtreams,
		Do: func(ctx context.Context) error {
			return s.repo.UpdateXtream(ctx, id, console.RefreshUpdate(interval))
		},
	})
}

// Delete removes an account. Confirmation is the caller's job.
func (s *XtreamService) Delete(ctx context.Context, id string) (*console.Reload, error) {
	return s.pipeline.Run(ctx, Mutation{
		Action: ActionXtreamDelete,
		Target: id,
		Scope:  console.ScopeXtreams,
		Do: func(ctx context.Context) error {
			return s.repo.DeleteXtream(ctx, id)
		},
	})
}
