package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fitgrid/models"
	"fitgrid/services/schedule"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubScheduleService returns canned results so handler mapping can be tested
// without repositories.
type stubScheduleService struct {
	view *models.ActiveScheduleView
	err  error
}

func (s *stubScheduleService) Instantiate(ctx context.Context, templateID, userID string) (*models.ActiveScheduleView, error) {
	return s.view, s.err
}

func (s *stubScheduleService) Reset(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error) {
	return s.view, s.err
}

func (s *stubScheduleService) EnqueueReset(scheduleID string, runAt time.Time) error {
	return s.err
}

func (s *stubScheduleService) Join(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error) {
	return s.view, s.err
}

func (s *stubScheduleService) Leave(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveScheduleView, error) {
	return s.view, s.err
}

func (s *stubScheduleService) Get(ctx context.Context, scheduleID, userID string) (*models.ActiveScheduleView, error) {
	return s.view, s.err
}

func (s *stubScheduleService) ListByGym(ctx context.Context, gymID, userID string) ([]models.ActiveScheduleView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.ActiveScheduleView{*s.view}, nil
}

func (s *stubScheduleService) AssignStaff(ctx context.Context, scheduleID string, staffIDs []string) error {
	return s.err
}

func performJoin(t *testing.T, svc schedule.ScheduleService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewScheduleHandler(svc, zap.NewNop())
	router.POST("/schedules/:id/slots/:slotId/join", h.JoinHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedules/sched-1/slots/slot-1/join", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestScheduleHandler_ErrorCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"slot full", schedule.ErrSlotFull, http.StatusConflict, CodeFull},
		{"already joined", schedule.ErrAlreadyJoined, http.StatusConflict, CodeAlreadyJoined},
		{"not joined", schedule.ErrNotJoined, http.StatusConflict, CodeNotJoined},
		{"schedule missing", schedule.ErrScheduleNotFound, http.StatusNotFound, CodeNotFound},
		{"slot missing", schedule.ErrSlotNotFound, http.StatusNotFound, CodeNotFound},
		{"reset contention", schedule.ErrResetContention, http.StatusConflict, CodeConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJoin(t, &stubScheduleService{err: tc.err})
			assert.Equal(t, tc.status, w.Code)

			var payload struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.Equal(t, tc.code, payload.Code)
		})
	}
}

func TestScheduleHandler_JoinReturnsProjection(t *testing.T) {
	view := &models.ActiveScheduleView{ID: "sched-1", GymID: "gym-1"}
	w := performJoin(t, &stubScheduleService{view: view})

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.ActiveScheduleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "sched-1", got.ID)
}

func TestScheduleHandler_ResetAsyncValidatesRunAt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewScheduleHandler(&stubScheduleService{}, zap.NewNop())
	router.POST("/schedules/:id/reset", h.ResetHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schedules/sched-1/reset?mode=async&runAt=notatime", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), CodeValidation))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/schedules/sched-1/reset?mode=async", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
