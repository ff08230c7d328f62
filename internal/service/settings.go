package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
)

// SettingsService loads and saves the backend settings record
type SettingsService struct {
	repo     domain.SettingsRepository
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo domain.SettingsRepository, pipeline *Pipeline, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{repo: repo, pipeline: pipeline, logger: logger}
}

// Load fetches the settings. Callers may treat failure as non-fatal.
func (s *SettingsService) Load(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		s.logger.Warn("failed to load settings", "error", err)
		return domain.Settings{}, err
	}
	s.logger.Debug("loaded settings")
	return settings, nil
}

// Save trims the URL fields and replaces the whole record.
// It returns the settings as submitted.
func (s *SettingsService) Save(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	settings.ResolverBaseURL = strings.TrimSpace(settings.ResolverBaseURL)
	settings.UpstreamURL = strings.TrimSpace(settings.UpstreamURL)

	_, err := s.pipeline.Run(ctx, Mutation{
		Action: ActionSettingsSave,
		Target: "settings",
		Scope:  console.ScopeSettings,
		Do: func(ctx context.Context) error {
			return s.repo.SaveSettings(ctx, settings)
		},
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
