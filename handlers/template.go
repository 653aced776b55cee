package handlers

import (
	"errors"
	"net/http"

	"fitgrid/middleware"
	"fitgrid/models"
	"fitgrid/services/template"
	"fitgrid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TemplateHandler exposes the blueprint authoring endpoints.
type TemplateHandler struct {
	Svc    template.TemplateService
	Logger *zap.Logger
}

func NewTemplateHandler(svc template.TemplateService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{Svc: svc, Logger: logger}
}

func (h *TemplateHandler) CreateHandler(c *gin.Context) {
	var tmpl models.ScheduleTemplate
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), CodeValidation)
		return
	}
	tmpl.GymID = c.GetString(middleware.ContextGymID)

	created, err := h.Svc.Create(c.Request.Context(), &tmpl)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TemplateHandler) GetHandler(c *gin.Context) {
	tmpl, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *TemplateHandler) ListHandler(c *gin.Context) {
	templates, err := h.Svc.ListByGym(c.Request.Context(), c.GetString(middleware.ContextGymID))
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *TemplateHandler) UpdateHandler(c *gin.Context) {
	var tmpl models.ScheduleTemplate
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), CodeValidation)
		return
	}
	tmpl.ID = c.Param("id")

	updated, err := h.Svc.Update(c.Request.Context(), &tmpl)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TemplateHandler) DeleteHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *TemplateHandler) templateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, template.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, template.ErrNameTaken):
		utils.JSONError(c, http.StatusConflict, err.Error(), CodeAlreadyExists)
	case errors.Is(err, models.ErrValidation):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), CodeValidation)
	default:
		h.Logger.Error("Template operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
