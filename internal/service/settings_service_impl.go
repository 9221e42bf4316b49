package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/repository"
)

type settingsService struct {
	settings        repository.PlannerConfigRepo
	defaultHours    int
	defaultWorkDays string
}

// NewSettingsService returns planner-settings access with get-or-create
// semantics. The defaults are applied when a user has no settings row yet.
func NewSettingsService(settings repository.PlannerConfigRepo, defaultHours int, defaultWorkDays string) SettingsService {
	return &settingsService{
		settings:        settings,
		defaultHours:    defaultHours,
		defaultWorkDays: defaultWorkDays,
	}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*domain.PlannerConfig, error) {
	cfg, err := s.settings.GetByUser(ctx, userID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Second precision so timestamps round-trip through the stored RFC3339 text.
	now := time.Now().UTC().Truncate(time.Second)
	cfg = &domain.PlannerConfig{
		UserID:      userID,
		HoursPerDay: s.defaultHours,
		WorkDays:    domain.ParseWorkDays(s.defaultWorkDays),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("default planner settings: %w", err)
	}
	if err := s.settings.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *settingsService) Update(ctx context.Context, cfg *domain.PlannerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	existing, err := s.settings.GetByUser(ctx, cfg.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	if existing != nil {
		cfg.CreatedAt = existing.CreatedAt
	} else {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	return s.settings.Upsert(ctx, cfg)
}
