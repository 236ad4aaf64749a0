// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/controllers"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/websocket"
)

// RegisterAuthRoutes sets up authentication and session routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	authController := controllers.NewAuthController(db)

	// Public authentication routes
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/remember-me/login", authController.LoginWithRememberToken)
	e.POST("/api/auth/register", authController.Register)

	// Logout needs the token to blacklist it
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)

	trial := e.Group("/api/trial")
	trial.Use(middleware.JWTMiddleware())
	trial.GET("", authController.GetTrialStatus)

	// Live notification socket, one connection per signed-in user
	ws := e.Group("/api/ws")
	ws.Use(middleware.JWTMiddleware())
	ws.GET("", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub, middleware.ExtractUsername(c), middleware.ExtractRole(c))
	})
}
