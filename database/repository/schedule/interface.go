package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"fitgrid/models"
)

var (
	// ErrNotFound is returned when no active schedule matches the query.
	ErrNotFound = errors.New("active schedule not found")
	// ErrDuplicateTemplate is returned when an active schedule already
	// references the template. The templateId unique index enforces the
	// one-live-instance-per-template invariant even under racing creates.
	ErrDuplicateTemplate = errors.New("active schedule already exists for template")
	// ErrVersionConflict is returned when a fenced write observed a stale version.
	ErrVersionConflict = errors.New("schedule version conflict")
	// ErrSlotNotFound is returned when the schedule has no slot with that ID.
	ErrSlotNotFound = errors.New("timeslot not found")
	// ErrSlotFull is returned when a join found the slot at capacity.
	ErrSlotFull = errors.New("timeslot is full")
	// ErrAlreadyJoined is returned when the user is already assigned to the slot.
	ErrAlreadyJoined = errors.New("user already joined timeslot")
	// ErrNotJoined is returned when a leave found no membership to remove.
	ErrNotJoined = errors.New("user not joined to timeslot")
)

// ScheduleRepository stores live schedules and owns the only mutation path
// for a slot's member set: the atomic conditional join/leave updates.
type ScheduleRepository interface {
	Create(ctx context.Context, sched *models.ActiveSchedule) error
	GetByID(ctx context.Context, id string) (*models.ActiveSchedule, error)
	GetByGymID(ctx context.Context, gymID string) ([]models.ActiveSchedule, error)

	// ReplaceDays swaps the full day list, fenced on the version the caller
	// read. Returns ErrVersionConflict when a join/leave or another reset
	// won the race.
	ReplaceDays(ctx context.Context, id string, version int64, days []models.ScheduleDay, resetAt time.Time) error

	// UpdateStaff replaces the instance's staff roster. Independent of reset.
	UpdateStaff(ctx context.Context, id string, staffIDs []string) error

	// JoinTimeSlot adds userID to the slot's member set only if the user is
	// not already present and the slot is below capacity, evaluated and
	// applied as a single indivisible update. Returns the schedule after a
	// fresh read on success.
	JoinTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error)

	// LeaveTimeSlot atomically removes userID from the slot's member set.
	LeaveTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error)

	EnsureIndexes() error
}
