// routes/order_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/controllers"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/websocket"
)

// RegisterOrderRoutes sets up cart and order routes
func RegisterOrderRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	cartController := controllers.NewCartController(db)
	orderController := controllers.NewOrderController(db, hub)

	cart := e.Group("/api/cart")
	cart.Use(middleware.JWTMiddleware())
	cart.GET("", cartController.GetCart)
	cart.POST("/items", cartController.AddItem)
	cart.DELETE("/items/:productId", cartController.RemoveItem)
	cart.DELETE("", cartController.ClearCart)

	orders := e.Group("/api/orders")
	orders.Use(middleware.JWTMiddleware())
	orders.POST("", orderController.Checkout)
	orders.GET("", orderController.GetOrders)
	orders.GET("/:id", orderController.GetOrder)
	orders.GET("/:id/upi-qr", orderController.GetUPIQR)

	adminOrders := e.Group("/api/orders")
	adminOrders.Use(middleware.JWTMiddleware())
	adminOrders.Use(middleware.RequireRole(models.RoleAdmin))
	adminOrders.PUT("/:id/status", orderController.UpdateStatus)
}
