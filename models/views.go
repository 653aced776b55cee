package models

import "time"

// TimeSlotView is the read-time projection of a slot for one caller.
// AvailableSpots and IsUserAssigned are derived on every read and never
// persisted, so they cannot drift from AssignedClients.
type TimeSlotView struct {
	TimeSlot       `bson:",inline"`
	AvailableSpots int  `json:"availableSpots"`
	IsUserAssigned bool `json:"isUserAssigned"`
}

// ScheduleDayView mirrors ScheduleDay with projected slots.
type ScheduleDayView struct {
	DayOfWeek int            `json:"dayOfWeek"`
	TimeSlots []TimeSlotView `json:"timeSlots"`
}

// ActiveScheduleView is the projected form of an active schedule returned by
// every read and every successful mutation.
type ActiveScheduleView struct {
	ID          string            `json:"id"`
	GymID       string            `json:"gymId"`
	TemplateID  string            `json:"templateId"`
	StaffIDs    []string          `json:"staffIds"`
	Days        []ScheduleDayView `json:"days"`
	LastResetAt time.Time         `json:"lastResetAt"`
}

// FindSlot returns the projected slot with the given ID, or nil.
func (v *ActiveScheduleView) FindSlot(slotID string) *TimeSlotView {
	for i := range v.Days {
		for j := range v.Days[i].TimeSlots {
			if v.Days[i].TimeSlots[j].ID == slotID {
				return &v.Days[i].TimeSlots[j]
			}
		}
	}
	return nil
}

// Clone deep-copies the view. The client coordinator snapshots the view
// before an optimistic patch and restores the snapshot on failure.
func (v *ActiveScheduleView) Clone() *ActiveScheduleView {
	if v == nil {
		return nil
	}
	out := *v
	out.StaffIDs = append([]string(nil), v.StaffIDs...)
	out.Days = make([]ScheduleDayView, len(v.Days))
	for i, day := range v.Days {
		slots := make([]TimeSlotView, len(day.TimeSlots))
		for j, slot := range day.TimeSlots {
			slots[j] = slot
			slots[j].AssignedClients = append([]string(nil), slot.AssignedClients...)
		}
		out.Days[i] = ScheduleDayView{DayOfWeek: day.DayOfWeek, TimeSlots: slots}
	}
	return &out
}
