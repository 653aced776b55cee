package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrValidation marks structural validation failures on templates and slots.
var ErrValidation = errors.New("validation error")

// timePattern matches zero-padded 24-hour wall-clock times, e.g. "09:00".
var timePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// ScheduleTemplate is a gym's reusable weekly blueprint. It is never bookable
// by itself; members book against the ActiveSchedule instantiated from it.
type ScheduleTemplate struct {
	ID        string        `bson:"id" json:"id"`
	GymID     string        `bson:"gymId" json:"gymId"`
	Name      string        `bson:"name" json:"name" binding:"required"`
	StaffIDs  []string      `bson:"staffIds" json:"staffIds"`
	Days      []ScheduleDay `bson:"days" json:"days"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ActiveSchedule is the single live, bookable instance derived from a
// template. Version is bumped by every successful join/leave and by reset;
// resets are fenced on the version they read.
type ActiveSchedule struct {
	ID          string        `bson:"id" json:"id"`
	GymID       string        `bson:"gymId" json:"gymId"`
	TemplateID  string        `bson:"templateId" json:"templateId"`
	StaffIDs    []string      `bson:"staffIds" json:"staffIds"`
	Days        []ScheduleDay `bson:"days" json:"days"`
	Version     int64         `bson:"version" json:"version"`
	LastResetAt time.Time     `bson:"lastResetAt" json:"lastResetAt"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

// ScheduleDay groups the bookable slots of one weekday. DayOfWeek runs 0-6,
// 0 being the first day of the week.
type ScheduleDay struct {
	DayOfWeek int        `bson:"dayOfWeek" json:"dayOfWeek"`
	TimeSlots []TimeSlot `bson:"timeSlots" json:"timeSlots"`
}

// TimeSlot is a capacity-bounded bookable interval. AssignedClients only ever
// changes through the atomic conditional update in the schedule repository,
// which guarantees len(AssignedClients) <= Capacity at all times.
type TimeSlot struct {
	ID              string   `bson:"id" json:"id"`
	StartTime       string   `bson:"startTime" json:"startTime"` // "HH:MM", 24-hour
	EndTime         string   `bson:"endTime" json:"endTime"`
	Capacity        int      `bson:"capacity" json:"capacity"`
	AssignedClients []string `bson:"assignedClients" json:"assignedClients"`
}

// Validate checks the structural invariants of a template: day-of-week range,
// time format and ordering, and minimum capacity.
func (t *ScheduleTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: template name is required", ErrValidation)
	}
	for _, day := range t.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek %d out of range [0,6]", ErrValidation, day.DayOfWeek)
		}
		for _, slot := range day.TimeSlots {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("day %d: %w", day.DayOfWeek, err)
			}
		}
	}
	return nil
}

// Validate checks a single slot's time window and capacity.
func (s *TimeSlot) Validate() error {
	if !timePattern.MatchString(s.StartTime) {
		return fmt.Errorf("%w: invalid startTime %q", ErrValidation, s.StartTime)
	}
	if !timePattern.MatchString(s.EndTime) {
		return fmt.Errorf("%w: invalid endTime %q", ErrValidation, s.EndTime)
	}
	// Zero-padded HH:MM compares correctly as a plain string.
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrValidation, s.StartTime, s.EndTime)
	}
	if s.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	return nil
}

// FindSlot returns the slot with the given ID, or nil.
func (s *ActiveSchedule) FindSlot(slotID string) *TimeSlot {
	for i := range s.Days {
		for j := range s.Days[i].TimeSlots {
			if s.Days[i].TimeSlots[j].ID == slotID {
				return &s.Days[i].TimeSlots[j]
			}
		}
	}
	return nil
}
