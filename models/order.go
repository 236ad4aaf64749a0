// models/order.go
package models

// Payment types recorded on orders.
const (
	PaymentUPIDirect  = "UPI_DIRECT"
	PaymentGSTInvoice = "GST_INVOICE"
)

// Order statuses managed by admin after placement.
var OrderStatusOptions = []string{
	"Pending", "Processing", "Pending from Client", "Completed", "Cancelled",
}

// AttributionNone is recorded when no staff member is credited on an order.
const AttributionNone = "None"

// OrderItem stores the already-computed line total in Price, not a unit
// rate. Quantity is 1 for percentage-priced items, where the money amount
// lives in the price itself.
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	SKU      string  `json:"sku" bson:"sku"`
}

type ClientDetails struct {
	Name    string `json:"name" bson:"name"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// StaffRef credits a telecaller, franchise or partner on an order.
// ID is AttributionNone when unattributed.
type StaffRef struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// Order is created once at checkout and never mutated afterwards, except
// for the admin-managed Status and AdminComments fields.
type Order struct {
	OrderID           int64         `json:"orderId" bson:"_id"`
	Date              string        `json:"date" bson:"date"`
	Status            string        `json:"status" bson:"status"`
	Items             []OrderItem   `json:"items" bson:"items"`
	Subtotal          float64       `json:"subtotal" bson:"subtotal"`
	Tax               float64       `json:"tax" bson:"tax"`
	TotalAmount       float64       `json:"totalAmount" bson:"totalAmount"`
	PaymentType       string        `json:"paymentType" bson:"paymentType"`
	ClientDetails     ClientDetails `json:"clientDetails" bson:"clientDetails"`
	FranchiseDetails  StaffRef      `json:"franchiseDetails" bson:"franchiseDetails"`
	TelecallerDetails StaffRef      `json:"telecallerDetails" bson:"telecallerDetails"`
	PartnerDetails    StaffRef      `json:"partnerDetails" bson:"partnerDetails"`
	AdminComments     string        `json:"adminComments,omitempty" bson:"adminComments,omitempty"`
}

// CheckoutRequest is the body for POST /api/orders. PaymentMode is "upi"
// (no tax) or "gst" (18% added).
type CheckoutRequest struct {
	PaymentMode  string        `json:"paymentMode" validate:"required,oneof=upi gst"`
	Client       ClientDetails `json:"client"`
	TelecallerID string        `json:"telecallerId,omitempty"`
	FranchiseID  string        `json:"franchiseId,omitempty"`
	PartnerID    string        `json:"partnerId,omitempty"`
}

// OrderStatusRequest is the admin body for updating order state.
type OrderStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	AdminComments string `json:"adminComments,omitempty"`
}
