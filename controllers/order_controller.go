// controllers/order_controller.go
package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nirmaantech/portal_backend/config"
	"github.com/nirmaantech/portal_backend/middleware"
	"github.com/nirmaantech/portal_backend/models"
	"github.com/nirmaantech/portal_backend/repositories"
	"github.com/nirmaantech/portal_backend/services"
	"github.com/nirmaantech/portal_backend/utils"
	"github.com/nirmaantech/portal_backend/websocket"
)

// OrderController handles checkout and order management
type OrderController struct {
	DB       *mongo.Client
	Hub      *websocket.Hub
	userRepo *repositories.UserRepository
	logger   *log.Logger
}

func NewOrderController(db *mongo.Client, hub *websocket.Hub) *OrderController {
	return &OrderController{
		DB:       db,
		Hub:      hub,
		userRepo: repositories.NewUserRepository(db),
		logger:   log.New(os.Stdout, "[ORDERS] ", log.LstdFlags),
	}
}

func (oc *OrderController) orderCollection() *mongo.Collection {
	return config.GetCollection(oc.DB, "orders")
}

// Checkout converts the caller's cart into an order. The order insert
// and the cart removal commit in one Mongo transaction so a crash never
// leaves both or neither.
func (oc *OrderController) Checkout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var req models.CheckoutRequest
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

	username := middleware.ExtractUsername(c)
	role := middleware.ExtractRole(c)
	franchiseTier := role == models.RoleFranchise

	var cart models.Cart
	err := config.GetCollection(oc.DB, "carts").FindOne(ctx, bson.M{"_id": username}).Decode(&cart)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Cart is empty",
		})
	}

	req.Client.Name = utils.SanitizeInput(req.Client.Name)
	req.Client.Address = utils.SanitizeInput(req.Client.Address)

	attr := services.Attribution{
		Telecaller: oc.userRepo.StaffRefByUsername(ctx, req.TelecallerID),
		Franchise:  oc.userRepo.StaffRefByUsername(ctx, req.FranchiseID),
		Partner:    oc.userRepo.StaffRefByUsername(ctx, req.PartnerID),
	}

	// Staff placing an order credit themselves when no explicit
	// attribution was entered
	if role == models.RoleTelecaller && req.TelecallerID == "" {
		attr.Telecaller = oc.userRepo.StaffRefByUsername(ctx, username)
	}
	if role == models.RoleFranchise && req.FranchiseID == "" {
		attr.Franchise = oc.userRepo.StaffRefByUsername(ctx, username)
	}
	if role == models.RolePartner && req.PartnerID == "" {
		attr.Partner = oc.userRepo.StaffRefByUsername(ctx, username)
	}

	order, err := services.BuildOrder(cart.Items, franchiseTier, req.PaymentMode, req.Client, attr, time.Now())
	if err != nil {
		if services.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to assemble order",
		})
	}

	session, err := oc.DB.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to start transaction",
		})
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := oc.orderCollection().InsertOne(sc, order); err != nil {
			return nil, err
		}
		if _, err := config.GetCollection(oc.DB, "carts").DeleteOne(sc, bson.M{"_id": username}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	if oc.Hub != nil {
		oc.Hub.NotifyOrderPlaced(order)
	}

	// Confirmation email is best effort; the order already committed
	if order.ClientDetails.Email != "" {
		go func(o models.Order) {
			body := fmt.Sprintf(
				"Dear %s,\n\nYour order #%d has been received.\n\nSubtotal: %.2f\nTax: %.2f\nTotal: %.2f\n\nThank you,\nNirmaanTech",
				o.ClientDetails.Name, o.OrderID, o.Subtotal, o.Tax, o.TotalAmount)
			if err := utils.SendEmail(o.ClientDetails.Email, fmt.Sprintf("Order Confirmation #%d", o.OrderID), body); err != nil {
				oc.logger.Printf("Failed to send order confirmation: %v", err)
			}
		}(*order)
	}

	responseData := map[string]interface{}{
		"order": order,
	}
	if order.PaymentType == models.PaymentUPIDirect {
		responseData["upiLink"] = utils.BuildUPILink(order.OrderID, order.TotalAmount)
		responseData["upiQr"] = fmt.Sprintf("/api/orders/%d/upi-qr", order.OrderID)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Order placed successfully",
		Data:    responseData,
	})
}

// canSeeOrder limits order reads to admin, the credited staff and the
// vendors whose SKUs appear on it
func (oc *OrderController) canSeeOrder(ctx context.Context, order *models.Order, role models.Role, username string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleTelecaller:
		return order.TelecallerDetails.ID == username
	case models.RoleFranchise:
		return order.FranchiseDetails.ID == username
	case models.RolePartner:
		return order.PartnerDetails.ID == username
	case models.RoleVendor:
		skus := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			skus = append(skus, item.SKU)
		}
		count, err := config.GetCollection(oc.DB, "products").CountDocuments(ctx,
			bson.M{"vendorId": username, "sku": bson.M{"$in": skus}})
		return err == nil && count > 0
	}
	return false
}

// GetOrders lists orders the caller may see, newest first. Partners get
// their commission alongside each order.
func (oc *OrderController) GetOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	role := middleware.ExtractRole(c)
	username := middleware.ExtractUsername(c)

	filter := bson.M{}
	switch role {
	case models.RoleAdmin:
	case models.RoleTelecaller:
		filter["telecallerDetails.id"] = username
	case models.RoleFranchise:
		filter["franchiseDetails.id"] = username
	case models.RolePartner:
		filter["partnerDetails.id"] = username
	case models.RoleVendor:
		// Vendors see orders containing their own SKUs
		skus, err := config.GetCollection(oc.DB, "products").Distinct(ctx, "sku", bson.M{"vendorId": username})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to fetch orders",
			})
		}
		if len(skus) == 0 {
			return c.JSON(http.StatusOK, models.Response{
				Status:  http.StatusOK,
				Message: "Orders retrieved successfully",
				Data:    []models.Order{},
			})
		}
		filter["items.sku"] = bson.M{"$in": skus}
	default:
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied for your role",
		})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := oc.orderCollection().Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch orders",
		})
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode orders",
		})
	}

	if role == models.RolePartner {
		type orderWithCommission struct {
			models.Order
			Commission float64 `json:"commission"`
		}
		decorated := make([]orderWithCommission, 0, len(orders))
		for i := range orders {
			decorated = append(decorated, orderWithCommission{
				Order:      orders[i],
				Commission: services.PartnerCommission(&orders[i]),
			})
		}
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Orders retrieved successfully",
			Data:    decorated,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Orders retrieved successfully",
		Data:    orders,
	})
}

// GetOrder returns one order if the caller is credited on it
func (oc *OrderController) GetOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var order models.Order
	if err := oc.orderCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Order not found",
		})
	}

	if !oc.canSeeOrder(ctx, &order, middleware.ExtractRole(c), middleware.ExtractUsername(c)) {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Order not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order retrieved successfully",
		Data:    order,
	})
}

// UpdateStatus lets admin move an order through its lifecycle
func (oc *OrderController) UpdateStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req models.OrderStatusRequest
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

	known := false
	for _, s := range models.OrderStatusOptions {
		if s == req.Status {
			known = true
			break
		}
	}
	if !known {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown order status: " + req.Status,
		})
	}

	update := bson.M{"status": req.Status}
	if req.AdminComments != "" {
		update["adminComments"] = utils.SanitizeInput(req.AdminComments)
	}

	result := oc.orderCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var order models.Order
	if err := result.Decode(&order); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Order not found",
		})
	}

	if oc.Hub != nil {
		oc.Hub.NotifyOrderStatus(&order)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order status updated successfully",
		Data:    order,
	})
}

// GetUPIQR renders the payment QR code for a direct UPI order as PNG
func (oc *OrderController) GetUPIQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var order models.Order
	if err := oc.orderCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Order not found",
		})
	}

	if !oc.canSeeOrder(ctx, &order, middleware.ExtractRole(c), middleware.ExtractUsername(c)) {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Order not found",
		})
	}

	if order.PaymentType != models.PaymentUPIDirect {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Order is not a direct UPI payment",
		})
	}

	qrCode, err := qr.Encode(utils.BuildUPILink(order.OrderID, order.TotalAmount), qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code: " + err.Error(),
		})
	}

	qrCode, err = barcode.Scale(qrCode, 256, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code: " + err.Error(),
		})
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code as PNG: " + err.Error(),
		})
	}

	c.Response().Header().Set("Content-Type", "image/png")
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=order-%d.png", order.OrderID))
	return c.Blob(http.StatusOK, "image/png", buffer.Bytes())
}
