package templateRepo

import (
	"context"
	"errors"

	"fitgrid/models"
)

var (
	// ErrNotFound is returned when no template matches the query.
	ErrNotFound = errors.New("schedule template not found")
	// ErrDuplicateName is returned when a gym already has a template with that name.
	ErrDuplicateName = errors.New("template name already in use for this gym")
)

// TemplateRepository is the authoritative store of schedule blueprints.
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *models.ScheduleTemplate) error
	GetByID(ctx context.Context, id string) (*models.ScheduleTemplate, error)
	GetByGymID(ctx context.Context, gymID string) ([]models.ScheduleTemplate, error)
	Update(ctx context.Context, tmpl *models.ScheduleTemplate) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}
