// routes/lead_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/controllers"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/websocket"
)

// RegisterLeadRoutes sets up lead management and call-script routes
func RegisterLeadRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	leadController := controllers.NewLeadController(db, hub)
	scriptController := controllers.NewScriptController(db)

	// Vendors never see lead data
	leads := e.Group("/api/leads")
	leads.Use(middleware.JWTMiddleware())
	leads.Use(middleware.RequireStaff())
	leads.GET("", leadController.GetMyLeads)
	leads.POST("", leadController.CreateLead)
	leads.GET("/metrics", leadController.GetMetrics)
	leads.GET("/report", leadController.GetActivityReport)
	leads.GET("/:id", leadController.GetLead)
	leads.POST("/:id/calls", leadController.LogCall)

	adminLeads := e.Group("/api/leads")
	adminLeads.Use(middleware.JWTMiddleware())
	adminLeads.Use(middleware.RequireRole(models.RoleAdmin))
	adminLeads.PUT("/:id/assign", leadController.AssignLead)
	adminLeads.DELETE("/:id", leadController.DeleteLead)

	scripts := e.Group("/api/scripts")
	scripts.Use(middleware.JWTMiddleware())
	scripts.Use(middleware.RequireStaff())
	scripts.GET("", scriptController.GetMyScripts)

	adminScripts := e.Group("/api/scripts")
	adminScripts.Use(middleware.JWTMiddleware())
	adminScripts.Use(middleware.RequireRole(models.RoleAdmin))
	adminScripts.POST("", scriptController.CreateScript)
	adminScripts.PUT("/:id", scriptController.UpdateScript)
	adminScripts.DELETE("/:id", scriptController.DeleteScript)
}
