package services

import (
	"testing"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

var checkoutTime = time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC)

func cartWith(items ...models.CartItem) []models.CartItem { return items }

func fixedLine(qty float64) models.CartItem {
	return models.CartItem{
		Product: models.Product{
			ID: 10, SKU: "BI-LP-006", Name: "Loan Processing Fee",
			PriceType: models.PriceFixed, MRP: 1000, SellingPrice: 500, FranchisePrice: 400,
		},
		Quantity: qty,
	}
}

func percentageLine(baseValue float64) models.CartItem {
	return models.CartItem{
		Product: models.Product{
			ID: 11, SKU: "DM-PRO-004", Name: "Pro Package WPA",
			PriceType: models.PricePercentage, MRP: 10, SellingPrice: 6, FranchisePrice: 4,
		},
		BaseValue: baseValue,
	}
}

func client() models.ClientDetails {
	return models.ClientDetails{Name: "Pankaj V.", Phone: "9900011100"}
}

func TestBuildOrder_UPIHasNoTax(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(2)), false, "upi", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Subtotal != 1000 {
		t.Errorf("subtotal = %v, want 1000", order.Subtotal)
	}
	if order.Tax != 0 {
		t.Errorf("tax = %v, want 0", order.Tax)
	}
	if order.TotalAmount != 1000 {
		t.Errorf("total = %v, want 1000", order.TotalAmount)
	}
	if order.PaymentType != models.PaymentUPIDirect {
		t.Errorf("paymentType = %q, want %q", order.PaymentType, models.PaymentUPIDirect)
	}
}

func TestBuildOrder_GSTAddsEighteenPercent(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(2)), false, "gst", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Tax != 180 {
		t.Errorf("tax = %v, want 180", order.Tax)
	}
	if order.TotalAmount != 1180 {
		t.Errorf("total = %v, want 1180", order.TotalAmount)
	}
	if order.PaymentType != models.PaymentGSTInvoice {
		t.Errorf("paymentType = %q, want %q", order.PaymentType, models.PaymentGSTInvoice)
	}
}

func TestBuildOrder_ItemPriceIsLineTotal(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(3)), false, "upi", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(order.Items))
	}
	if order.Items[0].Price != 1500 {
		t.Errorf("item price = %v, want line total 1500", order.Items[0].Price)
	}
	if order.Items[0].Quantity != 3 {
		t.Errorf("item quantity = %v, want 3", order.Items[0].Quantity)
	}
}

func TestBuildOrder_PercentageItemNormalizesQuantity(t *testing.T) {
	order, err := BuildOrder(cartWith(percentageLine(500000)), false, "upi", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Items[0].Quantity != 1 {
		t.Errorf("quantity = %v, want 1 for percentage item", order.Items[0].Quantity)
	}
	if order.Items[0].Price != 30000 {
		t.Errorf("price = %v, want 30000", order.Items[0].Price)
	}
	if order.TotalAmount != 30000 {
		t.Errorf("total = %v, want 30000", order.TotalAmount)
	}
}

func TestBuildOrder_MixedCart(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(2), percentageLine(500000)), false, "gst", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Subtotal != 31000 {
		t.Errorf("subtotal = %v, want 31000", order.Subtotal)
	}
	wantTotal := 31000 + 31000*GSTRate
	if order.TotalAmount != wantTotal {
		t.Errorf("total = %v, want %v", order.TotalAmount, wantTotal)
	}
}

func TestBuildOrder_FranchiseTier(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(2)), true, "upi", client(), Attribution{}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Subtotal != 800 {
		t.Errorf("subtotal = %v, want 800", order.Subtotal)
	}
}

func TestBuildOrder_RejectsMissingClientFields(t *testing.T) {
	cases := []models.ClientDetails{
		{Phone: "9900011100"},
		{Name: "Pankaj V."},
		{},
	}
	for _, c := range cases {
		_, err := BuildOrder(cartWith(fixedLine(1)), false, "upi", c, Attribution{}, checkoutTime)
		if !IsValidation(err) {
			t.Errorf("client %+v: got %v, want validation error", c, err)
		}
	}
}

func TestBuildOrder_RejectsEmptyCart(t *testing.T) {
	_, err := BuildOrder(nil, false, "upi", client(), Attribution{}, checkoutTime)
	if !IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestBuildOrder_AttributionSentinels(t *testing.T) {
	order, err := BuildOrder(cartWith(fixedLine(1)), false, "upi", client(), Attribution{
		Telecaller: models.StaffRef{ID: "T1", Name: "Priya"},
	}, checkoutTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TelecallerDetails.ID != "T1" {
		t.Errorf("telecaller id = %q, want T1", order.TelecallerDetails.ID)
	}
	if order.FranchiseDetails.ID != models.AttributionNone {
		t.Errorf("franchise id = %q, want %q", order.FranchiseDetails.ID, models.AttributionNone)
	}
	if order.PartnerDetails.ID != models.AttributionNone {
		t.Errorf("partner id = %q, want %q", order.PartnerDetails.ID, models.AttributionNone)
	}
}

func TestPartnerCommission(t *testing.T) {
	order, _ := BuildOrder(cartWith(fixedLine(2)), false, "upi", client(), Attribution{
		Partner: models.StaffRef{ID: "P1", Name: "Amit"},
	}, checkoutTime)
	if got := PartnerCommission(order); got != 100 {
		t.Errorf("commission = %v, want 100", got)
	}

	unattributed, _ := BuildOrder(cartWith(fixedLine(2)), false, "upi", client(), Attribution{}, checkoutTime)
	if got := PartnerCommission(unattributed); got != 0 {
		t.Errorf("commission without partner = %v, want 0", got)
	}
}
