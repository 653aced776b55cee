package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "fitgrid/database/repository/schedule"
	"fitgrid/models"
)

// Join claims a spot in the slot for userID. The membership mutation happens
// as a single conditional update inside the repository; this layer only maps
// the outcome and projects the fresh state for the caller.
func (s *DefaultScheduleService) Join(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error) {
	sched, err := s.Schedules.JoinTimeSlot(ctx, scheduleID, slotID, userID)
	if err != nil {
		return nil, mapBookingErr(err, scheduleID, slotID)
	}
	view := Project(sched, userID)
	return &view, nil
}

// Leave releases the caller's spot in the slot.
func (s *DefaultScheduleService) Leave(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error) {
	sched, err := s.Schedules.LeaveTimeSlot(ctx, scheduleID, slotID, userID)
	if err != nil {
		return nil, mapBookingErr(err, scheduleID, slotID)
	}
	view := Project(sched, userID)
	return &view, nil
}

func mapBookingErr(err error, scheduleID, slotID string) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrNotFound):
		return ErrScheduleNotFound
	case errors.Is(err, scheduleRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, scheduleRepo.ErrSlotFull):
		return ErrSlotFull
	case errors.Is(err, scheduleRepo.ErrAlreadyJoined):
		return ErrAlreadyJoined
	case errors.Is(err, scheduleRepo.ErrNotJoined):
		return ErrNotJoined
	}
	return fmt.Errorf("booking operation failed on schedule %s slot %s: %w", scheduleID, slotID, err)
}
