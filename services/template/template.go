package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	templateRepo "fitgrid/database/repository/template"
	"fitgrid/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("schedule template not found")
	ErrNameTaken = errors.New("a template with this name already exists for the gym")
)

// TemplateService is the authoring surface for schedule blueprints.
type TemplateService interface {
	Create(ctx context.Context, tmpl *models.ScheduleTemplate) (*models.ScheduleTemplate, error)
	Get(ctx context.Context, id string) (*models.ScheduleTemplate, error)
	ListByGym(ctx context.Context, gymID string) ([]models.ScheduleTemplate, error)
	Update(ctx context.Context, tmpl *models.ScheduleTemplate) (*models.ScheduleTemplate, error)
	Delete(ctx context.Context, id string) error
}

// DefaultTemplateService is the production implementation.
type DefaultTemplateService struct {
	Repo templateRepo.TemplateRepository
}

func (s *DefaultTemplateService) Create(ctx context.Context, tmpl *models.ScheduleTemplate) (*models.ScheduleTemplate, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	tmpl.ID = uuid.New().String()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now
	if tmpl.StaffIDs == nil {
		tmpl.StaffIDs = []string{}
	}

	if err := s.Repo.Create(ctx, tmpl); err != nil {
		if errors.Is(err, templateRepo.ErrDuplicateName) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return tmpl, nil
}

func (s *DefaultTemplateService) Get(ctx context.Context, id string) (*models.ScheduleTemplate, error) {
	tmpl, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}
	return tmpl, nil
}

func (s *DefaultTemplateService) ListByGym(ctx context.Context, gymID string) ([]models.ScheduleTemplate, error) {
	templates, err := s.Repo.GetByGymID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates for gym %s: %w", gymID, err)
	}
	return templates, nil
}

func (s *DefaultTemplateService) Update(ctx context.Context, tmpl *models.ScheduleTemplate) (*models.ScheduleTemplate, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, tmpl.ID)
	if err != nil {
		return nil, err
	}
	tmpl.GymID = current.GymID
	tmpl.CreatedAt = current.CreatedAt
	tmpl.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, tmpl); err != nil {
		if errors.Is(err, templateRepo.ErrDuplicateName) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, templateRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update template %s: %w", tmpl.ID, err)
	}
	return tmpl, nil
}

func (s *DefaultTemplateService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	return nil
}
