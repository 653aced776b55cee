package schedule

import (
	"context"
	"time"

	scheduleRepo "fitgrid/database/repository/schedule"
	templateRepo "fitgrid/database/repository/template"
	"fitgrid/models"

	"github.com/hibiken/asynq"
)

// ScheduleService covers the live-schedule lifecycle: instantiation from a
// template, reset-with-preservation, the join/leave capacity engine, and
// projected reads. Callers arrive pre-authorized; the service never inspects
// roles. Every returned schedule is projected against the calling user.
type ScheduleService interface {
	Instantiate(ctx context.Context, templateID, userID string) (*models.ActiveScheduleView, error)
	Reset(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error)
	EnqueueReset(scheduleID string, runAt time.Time) error

	Join(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error)
	Leave(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error)

	Get(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error)
	ListByGym(ctx context.Context, gymID, userID string) ([]models.ActiveScheduleView, error)

	AssignStaff(ctx context.Context, scheduleID string, staffIDs []string) error
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Templates templateRepo.TemplateRepository
	Schedules scheduleRepo.ScheduleRepository
	Asynq     *asynq.Client
}
