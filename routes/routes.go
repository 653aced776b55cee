package routes

import (
	"net/http"
	"time"

	"fitgrid/handlers"
	"fitgrid/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the wired handlers for route registration.
type HandlerBundle struct {
	Schedule *handlers.ScheduleHandler
	Template *handlers.TemplateHandler
}

// RegisterRoutes mounts all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterTemplateRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm fitgrid"})
	})
}

// RegisterTemplateRoutes registers blueprint authoring endpoints (staff only).
func RegisterTemplateRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/templates")
	{
		api.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
		api.POST("", hb.Template.CreateHandler)
		api.GET("", hb.Template.ListHandler)
		api.GET("/:id", hb.Template.GetHandler)
		api.PUT("/:id", hb.Template.UpdateHandler)
		api.DELETE("/:id", hb.Template.DeleteHandler)
	}
}

// RegisterScheduleRoutes registers the live schedule endpoints. Reads and
// join/leave are member-level; instantiation, reset and staff assignment are
// gated to staff before the core runs.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedules")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("", hb.Schedule.ListHandler)
		api.GET("/:id", hb.Schedule.GetHandler)
		api.POST("/:id/slots/:slotId/join", hb.Schedule.JoinHandler)
		api.POST("/:id/slots/:slotId/leave", hb.Schedule.LeaveHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnly())
		staff.POST("", hb.Schedule.CreateHandler)
		staff.POST("/:id/reset", hb.Schedule.ResetHandler)
		staff.PUT("/:id/staff", hb.Schedule.AssignStaffHandler)
	}
}
