package client

import (
	"context"
	"sync"

	"fitgrid/models"
)

// Coordinator keeps an optimistic local copy of one schedule in sync with the
// server. Every mutation runs as a command: snapshot the view, apply the
// optimistic patch, then either adopt the server's fresh projection or
// restore the snapshot wholesale. At most one action per timeslot is in
// flight at any moment.
type Coordinator struct {
	api    *Client
	userID string

	mu         sync.Mutex
	scheduleID string
	view       *models.ActiveScheduleView
	inFlight   map[string]bool // slot IDs with an unresolved action
}

// NewCoordinator creates a coordinator acting as the given user.
func NewCoordinator(api *Client, userID string) *Coordinator {
	return &Coordinator{
		api:      api,
		userID:   userID,
		inFlight: make(map[string]bool),
	}
}

// Load fetches the schedule and makes it the coordinator's working view.
func (c *Coordinator) Load(ctx context.Context, scheduleID string) error {
	view, err := c.api.GetSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleID = scheduleID
	c.view = view
	return nil
}

// View returns a copy of the current local view. Callers render from the
// copy; the coordinator's own view only changes through commands and reloads.
func (c *Coordinator) View() *models.ActiveScheduleView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Clone()
}

// Join optimistically claims a spot in the slot and confirms it with the
// server. On any failure the local view is restored to the exact pre-action
// state.
func (c *Coordinator) Join(ctx context.Context, slotID string) error {
	return c.run(ctx, mutation{
		slotID: slotID,
		patch: func(view *models.ActiveScheduleView) {
			if slot := view.FindSlot(slotID); slot != nil {
				slot.AvailableSpots--
				slot.IsUserAssigned = true
				slot.AssignedClients = append(slot.AssignedClients, c.userID)
			}
		},
		send: func(ctx context.Context, scheduleID string) (*models.ActiveScheduleView, error) {
			return c.api.JoinSlot(ctx, scheduleID, slotID)
		},
	})
}

// Leave optimistically releases the spot and confirms it with the server.
func (c *Coordinator) Leave(ctx context.Context, slotID string) error {
	return c.run(ctx, mutation{
		slotID: slotID,
		patch: func(view *models.ActiveScheduleView) {
			slot := view.FindSlot(slotID)
			if slot == nil {
				return
			}
			slot.AvailableSpots++
			slot.IsUserAssigned = false
			kept := slot.AssignedClients[:0]
			for _, id := range slot.AssignedClients {
				if id != c.userID {
					kept = append(kept, id)
				}
			}
			slot.AssignedClients = kept
		},
		send: func(ctx context.Context, scheduleID string) (*models.ActiveScheduleView, error) {
			return c.api.LeaveSlot(ctx, scheduleID, slotID)
		},
	})
}

// mutation is one optimistic command: a local patch plus the server call
// that confirms it. Any mutating action gets the same snapshot/revert cycle.
type mutation struct {
	slotID string
	patch  func(view *models.ActiveScheduleView)
	send   func(ctx context.Context, scheduleID string) (*models.ActiveScheduleView, error)
}

func (c *Coordinator) run(ctx context.Context, m mutation) error {
	c.mu.Lock()
	if c.view == nil {
		c.mu.Unlock()
		return ErrNoSchedule
	}
	if c.inFlight[m.slotID] {
		c.mu.Unlock()
		return ErrActionInFlight
	}
	c.inFlight[m.slotID] = true
	scheduleID := c.scheduleID
	snapshot := c.view.Clone()
	m.patch(c.view)
	c.mu.Unlock()

	fresh, err := m.send(ctx, scheduleID)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, m.slotID)
	if err != nil {
		// Full revert: the optimistic patch leaves no trace.
		c.view = snapshot
		return err
	}
	// The optimistic patch is never trusted as final; the server's fresh
	// projection replaces the whole view.
	c.view = fresh
	return nil
}
