// services/order.go
package services

import (
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

// Attribution carries the staff references credited on an order. Empty
// fields become the "None" sentinel on the built order.
type Attribution struct {
	Telecaller models.StaffRef
	Franchise  models.StaffRef
	Partner    models.StaffRef
}

// ComputeSubtotal sums the line totals of the cart at the given tier.
func ComputeSubtotal(items []models.CartItem, franchiseTier bool) float64 {
	var subtotal float64
	for i := range items {
		subtotal += LineTotal(&items[i].Product, franchiseTier, items[i].Amount())
	}
	return subtotal
}

// BuildOrder assembles an immutable order from the cart. It is pure: the
// caller persists the order and clears the cart in a single transaction.
// Each order item stores its full line total as Price; percentage items
// normalize Quantity to 1 since their "quantity" is money, not count.
// Rejects an empty cart and missing client name or phone.
func BuildOrder(items []models.CartItem, franchiseTier bool, paymentMode string, client models.ClientDetails, attr Attribution, now time.Time) (*models.Order, error) {
	if len(items) == 0 {
		return nil, NewValidationError("cart is empty")
	}
	if client.Name == "" || client.Phone == "" {
		return nil, NewValidationError("client name and phone are required")
	}

	subtotal := ComputeSubtotal(items, franchiseTier)
	var tax float64
	paymentType := models.PaymentUPIDirect
	if paymentMode == "gst" {
		tax = subtotal * GSTRate
		paymentType = models.PaymentGSTInvoice
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for i := range items {
		item := &items[i]
		qty := item.Quantity
		if item.Product.PriceType == models.PricePercentage {
			qty = 1
		}
		orderItems = append(orderItems, models.OrderItem{
			Name:     item.Product.Name,
			Price:    LineTotal(&item.Product, franchiseTier, item.Amount()),
			Quantity: qty,
			SKU:      item.Product.SKU,
		})
	}

	return &models.Order{
		OrderID:           now.UnixMilli(),
		Date:              now.Format("2006-01-02"),
		Status:            "Pending",
		Items:             orderItems,
		Subtotal:          subtotal,
		Tax:               tax,
		TotalAmount:       subtotal + tax,
		PaymentType:       paymentType,
		ClientDetails:     client,
		FranchiseDetails:  normalizeStaff(attr.Franchise),
		TelecallerDetails: normalizeStaff(attr.Telecaller),
		PartnerDetails:    normalizeStaff(attr.Partner),
		AdminComments:     "Order placed via Portal",
	}, nil
}

// PartnerCommission derives the partner's cut for an attributed order.
// Returns 0 when the order credits no partner.
func PartnerCommission(o *models.Order) float64 {
	if o.PartnerDetails.ID == models.AttributionNone {
		return 0
	}
	return o.Subtotal * PartnerCommissionRate
}

func normalizeStaff(ref models.StaffRef) models.StaffRef {
	if ref.ID == "" {
		ref.ID = models.AttributionNone
	}
	return ref
}
