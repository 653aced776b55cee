package schedule

import "errors"

var (
	ErrTemplateNotFound = errors.New("schedule template not found")
	ErrScheduleNotFound = errors.New("active schedule not found")
	ErrSlotNotFound     = errors.New("timeslot not found")

	// ErrScheduleExists is returned by Instantiate when the template already
	// has its one live instance.
	ErrScheduleExists = errors.New("active schedule already exists for this template")

	// ErrSlotFull is never coerced into another outcome; a capacity miss is
	// always reported as such.
	ErrSlotFull = errors.New("timeslot is full")

	// Join/leave are strict and symmetric: re-joining and leaving without a
	// membership are both errors, not no-ops.
	ErrAlreadyJoined = errors.New("already joined this timeslot")
	ErrNotJoined     = errors.New("not joined to this timeslot")

	// ErrResetContention is returned when a reset kept losing its version
	// fence to concurrent bookings.
	ErrResetContention = errors.New("schedule is being modified, reset could not be applied")
)
