// routes/admin_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/controllers"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
)

// RegisterAdminRoutes sets up user administration and moderation routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client) {
	adminController := controllers.NewAdminController(db)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/users", adminController.GetUsers)
	admin.POST("/users", adminController.CreateUser)
	admin.PUT("/users/:id", adminController.UpdateUser)
	admin.DELETE("/users/:id", adminController.DeleteUser)

	admin.PUT("/products/:id/visibility", adminController.SetProductVisibility)
	admin.GET("/order-statuses", adminController.GetOrderStatusOptions)
}
