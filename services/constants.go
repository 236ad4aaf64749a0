// services/constants.go
package services

// Business constants shared across the pricing, lead and trial services.
const (
	// GSTRate is added to an order subtotal when paying against a GST
	// invoice.
	GSTRate = 0.18

	// TrialWindowDays is how long a basic-plan franchise account stays
	// usable after registration.
	TrialWindowDays = 30

	// DialingOverheadSeconds is deducted from every raw call duration
	// before it counts as talk time.
	DialingOverheadSeconds = 20

	// BasicPlanProductCap limits how many products a basic-plan vendor
	// may list.
	BasicPlanProductCap = 3

	// PartnerCommissionRate is the share credited to a partner on an
	// attributed order.
	PartnerCommissionRate = 0.10
)

// AttendanceTarget is the daily goal surfaced on agent dashboards.
var AttendanceTarget = struct {
	Dials           int
	TalkTimeMinutes int
}{Dials: 100, TalkTimeMinutes: 120}
