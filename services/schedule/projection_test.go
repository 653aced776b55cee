package schedule

import (
	"testing"

	"fitgrid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	sched := &models.ActiveSchedule{
		ID:    "sched-1",
		GymID: "gym-1",
		Days: []models.ScheduleDay{
			{
				DayOfWeek: 2,
				TimeSlots: []models.TimeSlot{
					{ID: "s1", StartTime: "09:00", EndTime: "10:00", Capacity: 5,
						AssignedClients: []string{"a", "b"}},
					{ID: "s2", StartTime: "10:00", EndTime: "11:00", Capacity: 2,
						AssignedClients: []string{"a", "c"}},
				},
			},
		},
	}

	t.Run("derives spots and membership per caller", func(t *testing.T) {
		view := Project(sched, "a")
		require.Len(t, view.Days, 1)

		s1 := view.FindSlot("s1")
		assert.Equal(t, 3, s1.AvailableSpots)
		assert.True(t, s1.IsUserAssigned)

		s2 := view.FindSlot("s2")
		assert.Equal(t, 0, s2.AvailableSpots)
		assert.True(t, s2.IsUserAssigned)

		other := Project(sched, "z")
		assert.False(t, other.FindSlot("s1").IsUserAssigned)
	})

	t.Run("anonymous caller is never assigned", func(t *testing.T) {
		view := Project(sched, "")
		assert.False(t, view.FindSlot("s1").IsUserAssigned)
		assert.False(t, view.FindSlot("s2").IsUserAssigned)
	})

	t.Run("capacity shrunk below member count reports zero", func(t *testing.T) {
		over := &models.ActiveSchedule{
			Days: []models.ScheduleDay{
				{TimeSlots: []models.TimeSlot{
					{ID: "s1", Capacity: 1, AssignedClients: []string{"a", "b", "c"}},
				}},
			},
		}
		view := Project(over, "b")
		slot := view.FindSlot("s1")
		assert.Equal(t, 0, slot.AvailableSpots)
		assert.True(t, slot.IsUserAssigned)
		// The membership itself is untouched.
		assert.Len(t, slot.AssignedClients, 3)
	})
}
