package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTemplate() *ScheduleTemplate {
	return &ScheduleTemplate{
		Name:  "Morning Classes",
		GymID: "gym-1",
		Days: []ScheduleDay{
			{
				DayOfWeek: 1,
				TimeSlots: []TimeSlot{
					{ID: "s1", StartTime: "06:30", EndTime: "07:30", Capacity: 10},
				},
			},
		},
	}
}

func TestScheduleTemplate_Validate(t *testing.T) {
	assert.NoError(t, validTemplate().Validate())

	t.Run("name required", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Name = ""
		assert.ErrorIs(t, tmpl.Validate(), ErrValidation)
	})

	t.Run("day of week range", func(t *testing.T) {
		for _, day := range []int{-1, 7} {
			tmpl := validTemplate()
			tmpl.Days[0].DayOfWeek = day
			assert.ErrorIs(t, tmpl.Validate(), ErrValidation)
		}
		tmpl := validTemplate()
		tmpl.Days[0].DayOfWeek = 6
		assert.NoError(t, tmpl.Validate())
	})
}

func TestTimeSlot_Validate(t *testing.T) {
	cases := []struct {
		name  string
		slot  TimeSlot
		valid bool
	}{
		{"valid", TimeSlot{StartTime: "09:00", EndTime: "10:00", Capacity: 5}, true},
		{"late evening", TimeSlot{StartTime: "22:15", EndTime: "23:45", Capacity: 1}, true},
		{"bad start format", TimeSlot{StartTime: "9:00", EndTime: "10:00", Capacity: 5}, false},
		{"bad hour", TimeSlot{StartTime: "24:00", EndTime: "25:00", Capacity: 5}, false},
		{"bad minute", TimeSlot{StartTime: "09:60", EndTime: "10:00", Capacity: 5}, false},
		{"start equals end", TimeSlot{StartTime: "09:00", EndTime: "09:00", Capacity: 5}, false},
		{"start after end", TimeSlot{StartTime: "11:00", EndTime: "10:00", Capacity: 5}, false},
		{"zero capacity", TimeSlot{StartTime: "09:00", EndTime: "10:00", Capacity: 0}, false},
		{"negative capacity", TimeSlot{StartTime: "09:00", EndTime: "10:00", Capacity: -2}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.slot.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestActiveSchedule_FindSlot(t *testing.T) {
	sched := &ActiveSchedule{
		Days: []ScheduleDay{
			{DayOfWeek: 0, TimeSlots: []TimeSlot{{ID: "a"}, {ID: "b"}}},
			{DayOfWeek: 3, TimeSlots: []TimeSlot{{ID: "c"}}},
		},
	}

	slot := sched.FindSlot("c")
	assert.NotNil(t, slot)
	assert.Equal(t, "c", slot.ID)
	assert.Nil(t, sched.FindSlot("missing"))

	// The returned pointer aliases the schedule, so mutations stick.
	slot.AssignedClients = append(slot.AssignedClients, "m1")
	assert.Len(t, sched.Days[1].TimeSlots[0].AssignedClients, 1)
}

func TestActiveScheduleView_Clone(t *testing.T) {
	view := &ActiveScheduleView{
		ID:       "sched-1",
		StaffIDs: []string{"coach-1"},
		Days: []ScheduleDayView{
			{DayOfWeek: 0, TimeSlots: []TimeSlotView{
				{TimeSlot: TimeSlot{ID: "s1", Capacity: 5,
					AssignedClients: []string{"a", "b"}}, AvailableSpots: 3},
			}},
		},
	}

	clone := view.Clone()
	clone.StaffIDs[0] = "changed"
	clone.Days[0].TimeSlots[0].AssignedClients[0] = "changed"
	clone.Days[0].TimeSlots[0].AvailableSpots = 0

	assert.Equal(t, "coach-1", view.StaffIDs[0])
	assert.Equal(t, "a", view.Days[0].TimeSlots[0].AssignedClients[0])
	assert.Equal(t, 3, view.Days[0].TimeSlots[0].AvailableSpots)

	var nilView *ActiveScheduleView
	assert.Nil(t, nilView.Clone())
}
