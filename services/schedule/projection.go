package schedule

import "fitgrid/models"

// Project attaches the derived per-slot fields for one caller: spots
// remaining and whether the caller holds one. It is pure and runs on every
// read, so the output can never lag behind the persisted member sets.
func Project(s *models.ActiveSchedule, userID string) models.ActiveScheduleView {
	days := make([]models.ScheduleDayView, len(s.Days))
	for i, day := range s.Days {
		slots := make([]models.TimeSlotView, len(day.TimeSlots))
		for j, slot := range day.TimeSlots {
			slots[j] = projectSlot(slot, userID)
		}
		days[i] = models.ScheduleDayView{DayOfWeek: day.DayOfWeek, TimeSlots: slots}
	}
	return models.ActiveScheduleView{
		ID:          s.ID,
		GymID:       s.GymID,
		TemplateID:  s.TemplateID,
		StaffIDs:    append([]string(nil), s.StaffIDs...),
		Days:        days,
		LastResetAt: s.LastResetAt,
	}
}

func projectSlot(slot models.TimeSlot, userID string) models.TimeSlotView {
	assigned := false
	if userID != "" {
		for _, id := range slot.AssignedClients {
			if id == userID {
				assigned = true
				break
			}
		}
	}
	spots := slot.Capacity - len(slot.AssignedClients)
	if spots < 0 {
		// A template edit can shrink capacity below the carried member
		// count; report zero rather than a negative remainder.
		spots = 0
	}
	return models.TimeSlotView{
		TimeSlot:       slot,
		AvailableSpots: spots,
		IsUserAssigned: assigned,
	}
}
