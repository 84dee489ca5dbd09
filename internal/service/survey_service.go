package service

import (
	"context"

	"surveyflow/internal/engine"
	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// SurveyService handles survey config CRUD. Every config is structurally
// validated before it is stored, so sessions never see a config with
// dangling ids.
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
	}
}

// Create validates and stores a new survey config
func (s *SurveyService) Create(ctx context.Context, cfg *model.SurveyConfig) (string, error) {
	if err := engine.CheckConfig(cfg); err != nil {
		return "", err
	}
	return s.surveyRepo.Create(ctx, cfg)
}

// GetByID retrieves a survey config by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.SurveyConfig, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// GetByHostID retrieves all survey configs for a host
func (s *SurveyService) GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyConfig, error) {
	return s.surveyRepo.GetByHostID(ctx, hostID)
}

// Update validates and replaces an existing survey config
func (s *SurveyService) Update(ctx context.Context, cfg *model.SurveyConfig) error {
	if err := engine.CheckConfig(cfg); err != nil {
		return err
	}
	return s.surveyRepo.Update(ctx, cfg)
}

// Delete removes a survey config
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	return s.surveyRepo.Delete(ctx, id)
}
