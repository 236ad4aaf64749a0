// routes/catalog_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/controllers"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
)

// RegisterCatalogRoutes sets up the storefront and vendor product routes
func RegisterCatalogRoutes(e *echo.Echo, db *mongo.Client) {
	productController := controllers.NewProductController(db)
	vendorController := controllers.NewVendorController(db)

	// Storefront is open to guests; a token upgrades pricing to the
	// caller's tier and lets admin see hidden products
	products := e.Group("/api/products")
	products.Use(middleware.OptionalJWT())
	products.GET("", productController.GetProducts)
	products.GET("/categories", productController.GetCategories)
	products.GET("/:id", productController.GetProduct)
	products.POST("/:id/reviews", productController.AddReview)

	// Vendor catalog management
	vendor := e.Group("/api/vendor/products")
	vendor.Use(middleware.JWTMiddleware())
	vendor.Use(middleware.RequireRole(models.RoleVendor))
	vendor.GET("", vendorController.GetMyProducts)
	vendor.POST("", vendorController.CreateProduct)
	vendor.PUT("/:id", vendorController.UpdateProduct)
	vendor.DELETE("/:id", vendorController.DeleteProduct)
	vendor.POST("/:id/image", vendorController.UploadProductImage)
}
