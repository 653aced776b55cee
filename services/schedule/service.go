package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleRepo "fitgrid/database/repository/schedule"
	templateRepo "fitgrid/database/repository/template"
	"fitgrid/models"
	"fitgrid/services/tasks"

	"github.com/google/uuid"
)

// resetAttempts bounds how often a fenced reset is retried against
// concurrent join/leave traffic before giving up.
const resetAttempts = 3

// Instantiate creates the one live schedule for a template, copying its
// day/slot structure with fresh empty member sets and its current staff
// roster. The template itself is untouched.
func (s *DefaultScheduleService) Instantiate(ctx context.Context, templateID, userID string) (*models.ActiveScheduleView, error) {
	tmpl, err := s.Templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}

	now := time.Now().UTC()
	sched := &models.ActiveSchedule{
		ID:          uuid.New().String(),
		GymID:       tmpl.GymID,
		TemplateID:  tmpl.ID,
		StaffIDs:    append([]string(nil), tmpl.StaffIDs...),
		Days:        freshDays(tmpl.Days),
		Version:     1,
		LastResetAt: now,
		CreatedAt:   now,
	}

	if err := s.Schedules.Create(ctx, sched); err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateTemplate) {
			return nil, ErrScheduleExists
		}
		return nil, fmt.Errorf("failed to create active schedule: %w", err)
	}

	view := Project(sched, userID)
	return &view, nil
}

// Reset re-applies the template's current structure onto the live instance.
// Slots matched by (dayOfWeek, startTime) keep their members; everything
// else starts empty, and slots dropped from the template lose their bookings.
// The staff roster on the instance is left alone. The write is fenced on the
// version read at the start, so a booking that lands mid-reset forces a
// re-derivation instead of being silently lost.
func (s *DefaultScheduleService) Reset(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error) {
	for attempt := 0; attempt < resetAttempts; attempt++ {
		sched, err := s.Schedules.GetByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrNotFound) {
				return nil, ErrScheduleNotFound
			}
			return nil, fmt.Errorf("failed to load schedule %s: %w", scheduleID, err)
		}

		tmpl, err := s.Templates.GetByID(ctx, sched.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, fmt.Errorf("failed to load template %s: %w", sched.TemplateID, err)
		}

		days := carryOverDays(tmpl.Days, sched.Days)
		err = s.Schedules.ReplaceDays(ctx, scheduleID, sched.Version, days, time.Now().UTC())
		if errors.Is(err, scheduleRepo.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply reset to schedule %s: %w", scheduleID, err)
		}

		return s.Get(ctx, scheduleID, userID)
	}
	return nil, ErrResetContention
}

// EnqueueReset schedules a reset to run in the background at runAt.
func (s *DefaultScheduleService) EnqueueReset(scheduleID string, runAt time.Time) error {
	task, opts, err := tasks.NewScheduleResetTask(models.ResetTaskPayload{ScheduleID: scheduleID}, runAt)
	if err != nil {
		return fmt.Errorf("failed to build reset task: %w", err)
	}
	if _, err := s.Asynq.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reset task: %w", err)
	}
	return nil
}

// AssignStaff replaces the instance's staff roster. This is the only way the
// roster changes; resets never touch it.
func (s *DefaultScheduleService) AssignStaff(ctx context.Context, scheduleID string, staffIDs []string) error {
	if err := s.Schedules.UpdateStaff(ctx, scheduleID, staffIDs); err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("failed to update staff for schedule %s: %w", scheduleID, err)
	}
	return nil
}

// Get returns the schedule projected against the calling user.
func (s *DefaultScheduleService) Get(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error) {
	sched, err := s.Schedules.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to load schedule %s: %w", scheduleID, err)
	}
	view := Project(sched, userID)
	return &view, nil
}

// ListByGym returns all live schedules of a gym projected against the caller.
func (s *DefaultScheduleService) ListByGym(ctx context.Context, gymID, userID string) ([]models.ActiveScheduleView, error) {
	schedules, err := s.Schedules.GetByGymID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules for gym %s: %w", gymID, err)
	}
	views := make([]models.ActiveScheduleView, len(schedules))
	for i := range schedules {
		views[i] = Project(&schedules[i], userID)
	}
	return views, nil
}

// freshDays copies the template structure with new slot IDs and empty member
// sets. AssignedClients is a non-nil empty slice so it persists as an array.
func freshDays(tmplDays []models.ScheduleDay) []models.ScheduleDay {
	days := make([]models.ScheduleDay, len(tmplDays))
	for i, day := range tmplDays {
		slots := make([]models.TimeSlot, len(day.TimeSlots))
		for j, slot := range day.TimeSlots {
			slots[j] = models.TimeSlot{
				ID:              uuid.New().String(),
				StartTime:       slot.StartTime,
				EndTime:         slot.EndTime,
				Capacity:        slot.Capacity,
				AssignedClients: []string{},
			}
		}
		days[i] = models.ScheduleDay{DayOfWeek: day.DayOfWeek, TimeSlots: slots}
	}
	return days
}

// carryOverDays derives the post-reset day list from the template, keeping
// the member set (and slot identity) of any existing slot with the same
// (dayOfWeek, startTime). This is a structural replace: capacity and endTime
// always come from the template.
func carryOverDays(tmplDays, existingDays []models.ScheduleDay) []models.ScheduleDay {
	type slotKey struct {
		day   int
		start string
	}
	existing := make(map[slotKey]*models.TimeSlot)
	for i := range existingDays {
		for j := range existingDays[i].TimeSlots {
			slot := &existingDays[i].TimeSlots[j]
			existing[slotKey{existingDays[i].DayOfWeek, slot.StartTime}] = slot
		}
	}

	days := make([]models.ScheduleDay, len(tmplDays))
	for i, day := range tmplDays {
		slots := make([]models.TimeSlot, len(day.TimeSlots))
		for j, slot := range day.TimeSlots {
			next := models.TimeSlot{
				ID:              uuid.New().String(),
				StartTime:       slot.StartTime,
				EndTime:         slot.EndTime,
				Capacity:        slot.Capacity,
				AssignedClients: []string{},
			}
			if old, ok := existing[slotKey{day.DayOfWeek, slot.StartTime}]; ok {
				next.ID = old.ID
				next.AssignedClients = append([]string{}, old.AssignedClients...)
			}
			slots[j] = next
		}
		days[i] = models.ScheduleDay{DayOfWeek: day.DayOfWeek, TimeSlots: slots}
	}
	return days
}
