// controllers/product_controller.go
package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
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

// ProductController serves the storefront catalog
type ProductController struct {
	DB *mongo.Client
}

func NewProductController(db *mongo.Client) *ProductController {
	return &ProductController{DB: db}
}

// catalogEntry decorates a product with the computed discount badge
type catalogEntry struct {
	models.Product
	DiscountPercent int `json:"discountPercent"`
}

// GetProducts lists the catalog. Hidden products only appear for admin.
// Query params: category, city, search, maxPrice, sort (price_asc, price_desc).
func (pc *ProductController) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")

	role := middleware.ExtractRole(c)
	franchiseTier := role == models.RoleFranchise

	filter := bson.M{}
	if role != models.RoleAdmin {
		filter["isVisible"] = true
	}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if city := c.QueryParam("city"); city != "" && city != "All Karnataka" {
		// City-wide products stay visible in every city filter
		filter["city"] = bson.M{"$in": []string{city, "All Karnataka"}}
	}
	if search := c.QueryParam("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := collection.Find(ctx, filter)
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

	// Price filtering uses the caller's tier rate, so it runs after
	// the fetch rather than in the query
	maxPrice := 0.0
	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, _ = strconv.ParseFloat(raw, 64)
	}

	entries := make([]catalogEntry, 0, len(products))
	for _, p := range products {
		if maxPrice > 0 && services.UnitRate(&p, franchiseTier) > maxPrice {
			continue
		}
		entries = append(entries, catalogEntry{
			Product:         p,
			DiscountPercent: services.DiscountPercent(&p, franchiseTier),
		})
	}

	switch c.QueryParam("sort") {
	case "price_asc":
		sort.Slice(entries, func(i, j int) bool {
			return services.UnitRate(&entries[i].Product, franchiseTier) < services.UnitRate(&entries[j].Product, franchiseTier)
		})
	case "price_desc":
		sort.Slice(entries, func(i, j int) bool {
			return services.UnitRate(&entries[i].Product, franchiseTier) > services.UnitRate(&entries[j].Product, franchiseTier)
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved successfully",
		Data:    entries,
	})
}

// GetProduct returns a single product by numeric id
func (pc *ProductController) GetProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	collection := config.GetCollection(pc.DB, "products")

	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch product",
		})
	}

	role := middleware.ExtractRole(c)
	if !product.IsVisible && role != models.RoleAdmin && middleware.ExtractUsername(c) != product.VendorID {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product retrieved successfully",
		Data: catalogEntry{
			Product:         product,
			DiscountPercent: services.DiscountPercent(&product, role == models.RoleFranchise),
		},
	})
}

// GetCategories returns the distinct visible catalog categories
func (pc *ProductController) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")

	raw, err := collection.Distinct(ctx, "category", bson.M{"isVisible": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch categories",
		})
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Categories retrieved successfully",
		Data:    categories,
	})
}

// AddReview appends a customer review to a product
func (pc *ProductController) AddReview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	var review models.ProductReview
	if err := c.Bind(&review); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if review.Rating < 1 || review.Rating > 5 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Rating must be between 1 and 5",
		})
	}
	if strings.TrimSpace(review.Reviewer) == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Reviewer name is required",
		})
	}

	review.Comment = utils.SanitizeInput(review.Comment)
	review.Reviewer = utils.SanitizeInput(review.Reviewer)
	review.Date = time.Now().Format("2006-01-02")

	collection := config.GetCollection(pc.DB, "products")

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id, "isVisible": true},
		bson.M{
			"$push": bson.M{"reviews": review},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save review",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Review added successfully",
		Data:    review,
	})
}
