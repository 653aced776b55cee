package handlers

import (
	"errors"
	"net/http"
	"time"

	"fitgrid/middleware"
	"fitgrid/models"
	"fitgrid/services/schedule"
	"fitgrid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Outcome codes carried in error payloads so remote clients can branch
// without parsing messages.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeFull          = "FULL"
	CodeAlreadyJoined = "ALREADY_JOINED"
	CodeNotJoined     = "NOT_JOINED"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION"
)

// ScheduleHandler exposes the live-schedule endpoints.
type ScheduleHandler struct {
	Svc    schedule.ScheduleService
	Logger *zap.Logger
}

func NewScheduleHandler(svc schedule.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc, Logger: logger}
}

// CreateHandler instantiates the live schedule for a template.
func (h *ScheduleHandler) CreateHandler(c *gin.Context) {
	var input struct {
		TemplateID string `json:"templateId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), CodeValidation)
		return
	}

	view, err := h.Svc.Instantiate(c.Request.Context(), input.TemplateID, c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ResetHandler re-applies the source template onto the live schedule. With
// mode=async the reset runs in the background instead, optionally at the
// RFC 3339 time given in runAt.
func (h *ScheduleHandler) ResetHandler(c *gin.Context) {
	scheduleID := c.Param("id")

	if c.Query("mode") == "async" {
		runAt := time.Now()
		if raw := c.Query("runAt"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid runAt, expected RFC 3339", CodeValidation)
				return
			}
			runAt = parsed
		}
		if err := h.Svc.EnqueueReset(scheduleID, runAt); err != nil {
			h.Logger.Error("Failed to enqueue reset", zap.String("scheduleId", scheduleID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to schedule reset", "")
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"scheduleId": scheduleID, "runAt": runAt})
		return
	}

	view, err := h.Svc.Reset(c.Request.Context(), scheduleID, c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JoinHandler claims a spot in a timeslot for the authenticated member.
func (h *ScheduleHandler) JoinHandler(c *gin.Context) {
	view, err := h.Svc.Join(c.Request.Context(), c.Param("id"), c.Param("slotId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// LeaveHandler releases the member's spot in a timeslot.
func (h *ScheduleHandler) LeaveHandler(c *gin.Context) {
	view, err := h.Svc.Leave(c.Request.Context(), c.Param("id"), c.Param("slotId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetHandler returns one schedule projected against the caller.
func (h *ScheduleHandler) GetHandler(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListHandler returns the caller's gym schedules projected against them.
func (h *ScheduleHandler) ListHandler(c *gin.Context) {
	views, err := h.Svc.ListByGym(c.Request.Context(), c.GetString(middleware.ContextGymID), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": views})
}

// AssignStaffHandler replaces the schedule's staff roster.
func (h *ScheduleHandler) AssignStaffHandler(c *gin.Context) {
	var input struct {
		StaffIDs []string `json:"staffIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), CodeValidation)
		return
	}
	if err := h.Svc.AssignStaff(c.Request.Context(), c.Param("id"), input.StaffIDs); err != nil {
		h.scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduleId": c.Param("id"), "staffIds": input.StaffIDs})
}

func (h *ScheduleHandler) scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrTemplateNotFound),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrSlotNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, schedule.ErrScheduleExists):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeAlreadyExists)
	case errors.Is(err, schedule.ErrSlotFull):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeFull)
	case errors.Is(err, schedule.ErrAlreadyJoined):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeAlreadyJoined)
	case errors.Is(err, schedule.ErrNotJoined):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeNotJoined)
	case errors.Is(err, schedule.ErrResetContention):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeConflict)
	case errors.Is(err, models.ErrValidation):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), CodeValidation)
	default:
		h.Logger.Error("Schedule operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
