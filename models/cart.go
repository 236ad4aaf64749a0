// models/cart.go
package models

import "time"

// CartItem holds a product snapshot plus the buyer's quantity. For
// percentage-priced products the monetary base value lives in BaseValue
// and Quantity stays 0; for fixed/unit products BaseValue stays 0.
type CartItem struct {
	Product   Product `json:"product" bson:"product"`
	Quantity  float64 `json:"quantity" bson:"quantity"`
	BaseValue float64 `json:"baseValue,omitempty" bson:"baseValue,omitempty"`
}

// Amount returns the numeric input for pricing: the base value for
// percentage products, the quantity otherwise.
func (ci CartItem) Amount() float64 {
	if ci.Product.PriceType == PricePercentage {
		return ci.BaseValue
	}
	return ci.Quantity
}

// Cart is one document per user; cleared on successful checkout.
type Cart struct {
	UserID    string     `json:"userId" bson:"_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CartItemRequest is the body for adding or updating a cart line.
type CartItemRequest struct {
	ProductID int64   `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity,omitempty"`
	BaseValue float64 `json:"baseValue,omitempty"`
}
