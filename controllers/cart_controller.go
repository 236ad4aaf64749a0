// controllers/cart_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/services"
)

// CartController manages per-user carts
type CartController struct {
	DB *mongo.Client
}

func NewCartController(db *mongo.Client) *CartController {
	return &CartController{DB: db}
}

func (cc *CartController) cartCollection() *mongo.Collection {
	return config.GetCollection(cc.DB, "carts")
}

func (cc *CartController) loadCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := cc.cartCollection().FindOne(ctx, bson.M{"_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := cc.cartCollection().ReplaceOne(ctx, bson.M{"_id": cart.UserID}, cart, opts)
	return err
}

// cartSummary decorates a cart with the caller's computed totals
type cartSummary struct {
	*models.Cart
	Subtotal float64 `json:"subtotal"`
}

func (cc *CartController) respondWithCart(c echo.Context, cart *models.Cart) error {
	franchiseTier := middleware.ExtractRole(c) == models.RoleFranchise

	subtotal := 0.0
	for _, item := range cart.Items {
		subtotal += services.LineTotal(&item.Product, franchiseTier, item.Amount())
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cart retrieved successfully",
		Data:    cartSummary{Cart: cart, Subtotal: subtotal},
	})
}

// GetCart returns the caller's cart with a live subtotal
func (cc *CartController) GetCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := cc.loadCart(ctx, middleware.ExtractUsername(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch cart",
		})
	}

	return cc.respondWithCart(c, cart)
}

// AddItem puts a product line in the cart, snapshotting the product.
// Adding an already-present product replaces its line.
func (cc *CartController) AddItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CartItemRequest
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

	var product models.Product
	err := config.GetCollection(cc.DB, "products").
		FindOne(ctx, bson.M{"_id": req.ProductID, "isVisible": true}).Decode(&product)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	item := models.CartItem{Product: product}
	if product.PriceType == models.PricePercentage {
		if req.BaseValue <= 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "A base value is required for this product",
			})
		}
		item.BaseValue = req.BaseValue
	} else {
		if req.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Quantity must be greater than zero",
			})
		}
		item.Quantity = req.Quantity
	}

	cart, err := cc.loadCart(ctx, middleware.ExtractUsername(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch cart",
		})
	}

	replaced := false
	for i := range cart.Items {
		if cart.Items[i].Product.ID == product.ID {
			cart.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		cart.Items = append(cart.Items, item)
	}

	if err := cc.saveCart(ctx, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save cart",
		})
	}

	return cc.respondWithCart(c, cart)
}

// RemoveItem drops a product line from the cart
func (cc *CartController) RemoveItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product id",
		})
	}

	cart, err := cc.loadCart(ctx, middleware.ExtractUsername(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch cart",
		})
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := cc.saveCart(ctx, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save cart",
		})
	}

	return cc.respondWithCart(c, cart)
}

// ClearCart empties the caller's cart
func (cc *CartController) ClearCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := middleware.ExtractUsername(c)
	if _, err := cc.cartCollection().DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to clear cart",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cart cleared successfully",
	})
}
