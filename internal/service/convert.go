package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/m3u"
)

// ConvertFileName is the name the converted playlist is saved under
const ConvertFileName = "playlist_convertita.m3u"

// ConvertResult describes a saved conversion
type ConvertResult struct {
	Path    string
	Bytes   int
	Summary m3u.Summary
}

// ConvertService runs one-shot conversions and saves the result locally
type ConvertService struct {
	repo   domain.ConvertRepository
	logger *slog.Logger
}

// NewConvertService creates a new convert service
func NewConvertService(repo domain.ConvertRepository, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertService{repo: repo, logger: logger}
}

// Convert asks the backend to convert sourceURL and writes the file into dir
func (s *ConvertService) Convert(ctx context.Context, sourceURL string, mode domain.Mode, dir string) (*ConvertResult, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, &domain.ValidationError{Fields: []string{"url"}, Message: "url is required"}
	}
	if mode == "" {
		mode = domain.ModeTV
	}

	data, err := s.repo.Convert(ctx, sourceURL, mode)
	if err != nil {
		s.logger.Error("convert failed", "url", sourceURL, "mode", mode, "error", err)
		return nil, err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}
	path := filepath.Join(dir, ConvertFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save converted playlist: %w", err)
	}

	result := &ConvertResult{Path: path, Bytes: len(data)}
	summary, err := m3u.Parse(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("converted file is not a readable playlist", "path", path, "error", err)
	} else {
		result.Summary = summary
	}

	s.logger.Info("converted playlist", "url", sourceURL, "mode", mode, "path", path, "entries", result.Summary.Len())
	return result, nil
}
