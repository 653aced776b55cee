package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fitgrid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverView(spots int, assigned bool, clients ...string) *models.ActiveScheduleView {
	return &models.ActiveScheduleView{
		ID:    "sched-1",
		GymID: "gym-1",
		Days: []models.ScheduleDayView{
			{DayOfWeek: 0, TimeSlots: []models.TimeSlotView{
				{
					TimeSlot: models.TimeSlot{
						ID: "slot-1", StartTime: "09:00", EndTime: "10:00",
						Capacity: 5, AssignedClients: clients,
					},
					AvailableSpots: spots,
					IsUserAssigned: assigned,
				},
			}},
		},
	}
}

// scheduleServer fakes the schedule API: GET returns the stored view, join and
// leave answer from configurable handlers.
type scheduleServer struct {
	mu      sync.Mutex
	view    *models.ActiveScheduleView
	onJoin  func(w http.ResponseWriter)
	onLeave func(w http.ResponseWriter)
}

func (s *scheduleServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		view, onJoin, onLeave := s.view, s.onJoin, s.onLeave
		s.mu.Unlock()
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(view)
		case strings.HasSuffix(r.URL.Path, "/join"):
			onJoin(w)
		case strings.HasSuffix(r.URL.Path, "/leave"):
			onLeave(w)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func respondView(view *models.ActiveScheduleView) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(view)
	}
}

func respondError(status int, code string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "rejected",
			"code":    code,
		})
	}
}

func newTestCoordinator(t *testing.T, srv *scheduleServer) (*Coordinator, func()) {
	ts := httptest.NewServer(srv.handler())
	api := NewClient(ts.URL, "test-token", 5*time.Second)
	coord := NewCoordinator(api, "alice")
	require.NoError(t, coord.Load(context.Background(), "sched-1"))
	return coord, ts.Close
}

func TestCoordinator_JoinAdoptsServerView(t *testing.T) {
	srv := &scheduleServer{
		view:   serverView(3, false, "b", "c"),
		onJoin: respondView(serverView(2, true, "b", "c", "alice")),
	}
	coord, done := newTestCoordinator(t, srv)
	defer done()

	require.NoError(t, coord.Join(context.Background(), "slot-1"))

	slot := coord.View().FindSlot("slot-1")
	assert.Equal(t, 2, slot.AvailableSpots)
	assert.True(t, slot.IsUserAssigned)
	assert.Contains(t, slot.AssignedClients, "alice")
}

func TestCoordinator_FullRejectionRollsBack(t *testing.T) {
	srv := &scheduleServer{
		view:   serverView(1, false, "b", "c", "d", "e"),
		onJoin: respondError(http.StatusConflict, "FULL"),
	}
	coord, done := newTestCoordinator(t, srv)
	defer done()

	baseline := coord.View()

	err := coord.Join(context.Background(), "slot-1")
	assert.ErrorIs(t, err, ErrFull)

	// The optimistic patch left no trace.
	assert.Equal(t, baseline, coord.View())
}

func TestCoordinator_LeaveNotJoinedRollsBack(t *testing.T) {
	srv := &scheduleServer{
		view:    serverView(3, false, "b", "c"),
		onLeave: respondError(http.StatusConflict, "NOT_JOINED"),
	}
	coord, done := newTestCoordinator(t, srv)
	defer done()

	baseline := coord.View()

	err := coord.Leave(context.Background(), "slot-1")
	assert.ErrorIs(t, err, ErrNotJoined)
	assert.Equal(t, baseline, coord.View())
}

func TestCoordinator_SingleFlightPerSlot(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := &scheduleServer{
		view: serverView(3, false, "b"),
		onJoin: func(w http.ResponseWriter) {
			close(started)
			<-release
			json.NewEncoder(w).Encode(serverView(2, true, "b", "alice"))
		},
	}
	coord, done := newTestCoordinator(t, srv)
	defer done()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- coord.Join(context.Background(), "slot-1")
	}()
	<-started

	// While the first action is unresolved, both directions are refused.
	assert.ErrorIs(t, coord.Join(context.Background(), "slot-1"), ErrActionInFlight)
	assert.ErrorIs(t, coord.Leave(context.Background(), "slot-1"), ErrActionInFlight)

	close(release)
	require.NoError(t, <-firstDone)

	// The slot unlocks once the action resolves.
	srv.mu.Lock()
	srv.onLeave = respondView(serverView(3, false, "b"))
	srv.mu.Unlock()
	assert.NoError(t, coord.Leave(context.Background(), "slot-1"))
}

func TestCoordinator_OptimisticPatchVisibleBeforeConfirm(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := &scheduleServer{
		view: serverView(3, false, "b"),
		onJoin: func(w http.ResponseWriter) {
			close(started)
			<-release
			json.NewEncoder(w).Encode(serverView(2, true, "b", "alice"))
		},
	}
	coord, done := newTestCoordinator(t, srv)
	defer done()

	joinDone := make(chan error, 1)
	go func() {
		joinDone <- coord.Join(context.Background(), "slot-1")
	}()
	<-started

	// Mid-flight the local view already shows the claimed spot.
	slot := coord.View().FindSlot("slot-1")
	assert.Equal(t, 2, slot.AvailableSpots)
	assert.True(t, slot.IsUserAssigned)

	close(release)
	require.NoError(t, <-joinDone)
}

func TestCoordinator_MutateWithoutLoad(t *testing.T) {
	coord := NewCoordinator(NewClient("http://unused", "t", time.Second), "alice")
	assert.ErrorIs(t, coord.Join(context.Background(), "slot-1"), ErrNoSchedule)
}
