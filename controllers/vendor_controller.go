// controllers/vendor_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/services"
	"github.com/nirmaantech/portal_backend/utils"
)

// VendorController manages a vendor's own product listings
type VendorController struct {
	DB *mongo.Client
}

func NewVendorController(db *mongo.Client) *VendorController {
	return &VendorController{DB: db}
}

func (vc *VendorController) productCollection() *mongo.Collection {
	return config.GetCollection(vc.DB, "products")
}

// GetMyProducts lists the vendor's own products, hidden ones included
func (vc *VendorController) GetMyProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendorID := middleware.ExtractUsername(c)

	cursor, err := vc.productCollection().Find(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch products",
		})
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode products",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// CreateProduct adds a listing. Basic plan vendors are capped at three
// products; the upgrade prompt rides on the 403.
func (vc *VendorController) CreateProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendor, err := utils.GetUserFromToken(c, vc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Failed to identify vendor",
		})
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	count, err := vc.productCollection().CountDocuments(ctx, bson.M{"vendorId": vendor.Username})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count products",
		})
	}

	if !services.CanUploadProduct(vendor, int(count)) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: fmt.Sprintf("Basic plan is limited to %d products. Upgrade to add more.", services.BasicPlanProductCap),
			Data: map[string]interface{}{
				"productCount": count,
				"productCap":   services.BasicPlanProductCap,
				"plan":         vendor.Plan,
			},
		})
	}

	now := time.Now()
	product := models.Product{
		ID:                    now.UnixMilli(),
		SKU:                   req.SKU,
		PriceType:             req.PriceType,
		UnitLabel:             req.UnitLabel,
		Category:              utils.SanitizeInput(req.Category),
		City:                  utils.SanitizeInput(req.City),
		Name:                  utils.SanitizeInput(req.Name),
		MRP:                   req.MRP,
		SellingPrice:          req.SellingPrice,
		FranchisePrice:        req.FranchisePrice,
		SellingPriceThreshold: req.SellingPriceThreshold,
		FranchisePercentAbove: req.FranchisePercentAbove,
		FranchisePercentBelow: req.FranchisePercentBelow,
		ShortDescription:      utils.SanitizeInput(req.ShortDescription),
		Image:                 req.Image,
		IsVisible:             true,
		VendorID:              vendor.Username,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if product.SKU == "" {
		product.SKU = fmt.Sprintf("VP-%s-%d", vendor.Username, now.UnixMilli())
	}
	if req.IsVisible != nil {
		product.IsVisible = *req.IsVisible
	}

	if _, err := vc.productCollection().InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A product with this SKU already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct edits one of the vendor's own listings
func (vc *VendorController) UpdateProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	vendorID := middleware.ExtractUsername(c)

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	update := bson.M{
		"name":             utils.SanitizeInput(req.Name),
		"priceType":        req.PriceType,
		"unitLabel":        req.UnitLabel,
		"category":         utils.SanitizeInput(req.Category),
		"city":             utils.SanitizeInput(req.City),
		"mrp":              req.MRP,
		"sellingPrice":     req.SellingPrice,
		"franchisePrice":   req.FranchisePrice,
		"sellingPriceThreshold": req.SellingPriceThreshold,
		"franchisePercentAbove": req.FranchisePercentAbove,
		"franchisePercentBelow": req.FranchisePercentBelow,
		"shortDescription": utils.SanitizeInput(req.ShortDescription),
		"updatedAt":        time.Now(),
	}
	if req.Image != "" {
		update["image"] = req.Image
	}
	if req.IsVisible != nil {
		update["isVisible"] = *req.IsVisible
	}

	result, err := vc.productCollection().UpdateOne(ctx,
		bson.M{"_id": id, "vendorId": vendorID},
		bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product updated successfully",
	})
}

// DeleteProduct removes one of the vendor's own listings
func (vc *VendorController) DeleteProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	vendorID := middleware.ExtractUsername(c)

	result, err := vc.productCollection().DeleteOne(ctx, bson.M{"_id": id, "vendorId": vendorID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete product",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product deleted successfully",
	})
}

// UploadProductImage stores a product image and attaches it to one of
// the vendor's listings. The thumbnail lands in the gallery.
func (vc *VendorController) UploadProductImage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	vendorID := middleware.ExtractUsername(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Image file is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	imageURL, thumbnailURL, err := utils.SaveProductImage(fileData, fileHeader.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := vc.productCollection().UpdateOne(ctx,
		bson.M{"_id": id, "vendorId": vendorID},
		bson.M{
			"$set":  bson.M{"image": imageURL, "updatedAt": time.Now()},
			"$push": bson.M{"galleryImages": thumbnailURL},
		})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to attach image",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Image uploaded successfully",
		Data: map[string]string{
			"image":     imageURL,
			"thumbnail": thumbnailURL,
		},
	})
}
