package services

import (
	"testing"

	"github.com/nirmaantech/portal_backend/models"
)

func fixedProduct() *models.Product {
	return &models.Product{
		ID: 3, SKU: "DM-BPA-003", PriceType: models.PriceFixed,
		MRP: 10000, SellingPrice: 6000, FranchisePrice: 4500,
	}
}

func unitProduct() *models.Product {
	return &models.Product{
		ID: 1, SKU: "WP-FT-001", PriceType: models.PriceUnit, UnitLabel: "sqft",
		UnitRateMRP: 30, UnitRateSelling: 26, UnitRateFranchise: 19,
	}
}

func percentageProduct() *models.Product {
	return &models.Product{
		ID: 4, SKU: "DM-PRO-004", PriceType: models.PricePercentage,
		MRP: 10, SellingPrice: 6, FranchisePrice: 4,
	}
}

func TestUnitRate_Fixed(t *testing.T) {
	p := fixedProduct()
	if got := UnitRate(p, false); got != 6000 {
		t.Errorf("retail rate = %v, want 6000", got)
	}
	if got := UnitRate(p, true); got != 4500 {
		t.Errorf("franchise rate = %v, want 4500", got)
	}
}

func TestUnitRate_Unit(t *testing.T) {
	p := unitProduct()
	if got := UnitRate(p, false); got != 26 {
		t.Errorf("retail rate = %v, want 26", got)
	}
	if got := UnitRate(p, true); got != 19 {
		t.Errorf("franchise rate = %v, want 19", got)
	}
}

func TestUnitRate_PercentageIsFraction(t *testing.T) {
	p := percentageProduct()
	if got := UnitRate(p, false); got != 0.06 {
		t.Errorf("retail rate = %v, want 0.06", got)
	}
	if got := UnitRate(p, true); got != 0.04 {
		t.Errorf("franchise rate = %v, want 0.04", got)
	}
}

func TestLineTotal_MatchesRateTimesQuantity(t *testing.T) {
	for _, p := range []*models.Product{fixedProduct(), unitProduct()} {
		for _, qty := range []float64{0, 1, 2, 150} {
			for _, tier := range []bool{false, true} {
				want := UnitRate(p, tier) * qty
				if got := LineTotal(p, tier, qty); got != want {
					t.Errorf("%s qty=%v tier=%v: total = %v, want %v", p.SKU, qty, tier, got, want)
				}
			}
		}
	}
}

func TestLineTotal_PercentageLinearInBaseValue(t *testing.T) {
	p := percentageProduct()
	base := LineTotal(p, false, 500000)
	if base != 30000 {
		t.Fatalf("total for 500000 = %v, want 30000", base)
	}
	if got := LineTotal(p, false, 1000000); got != 2*base {
		t.Errorf("doubling base value: got %v, want %v", got, 2*base)
	}
}

func TestUnitRateForValue_SplitThreshold(t *testing.T) {
	p := percentageProduct()
	p.SellingPriceThreshold = 12000
	p.FranchisePercentAbove = 5
	p.FranchisePercentBelow = 8

	if got := UnitRateForValue(p, false, 20000); got != 0.05 {
		t.Errorf("above threshold rate = %v, want 0.05", got)
	}
	if got := UnitRateForValue(p, false, 12000); got != 0.08 {
		t.Errorf("at threshold rate = %v, want 0.08", got)
	}
	// Split rates apply to both tiers identically.
	if got := UnitRateForValue(p, true, 20000); got != 0.05 {
		t.Errorf("franchise above threshold rate = %v, want 0.05", got)
	}
}

func TestUnitRateForValue_PolicyDisabledWithoutThreshold(t *testing.T) {
	p := percentageProduct()
	if got := UnitRateForValue(p, false, 20000); got != 0.06 {
		t.Errorf("rate = %v, want plain 0.06", got)
	}
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name string
		p    *models.Product
		tier bool
		want int
	}{
		{"fixed retail", fixedProduct(), false, 40},
		{"fixed franchise", fixedProduct(), true, 55},
		{"unit retail", unitProduct(), false, 13},
		{"percentage never badges", percentageProduct(), false, 0},
	}
	for _, tt := range tests {
		if got := DiscountPercent(tt.p, tt.tier); got != tt.want {
			t.Errorf("%s: discount = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDiscountPercent_ZeroMRP(t *testing.T) {
	p := fixedProduct()
	p.MRP = 0
	if got := DiscountPercent(p, false); got != 0 {
		t.Errorf("discount with zero MRP = %d, want 0", got)
	}
}

func TestDiscountPercent_NeverNegative(t *testing.T) {
	p := fixedProduct()
	p.SellingPrice = 12000 // above MRP
	if got := DiscountPercent(p, false); got != 0 {
		t.Errorf("discount selling above MRP = %d, want 0", got)
	}
}

func TestUnitRate_MissingFieldsReadAsZero(t *testing.T) {
	p := &models.Product{PriceType: models.PriceUnit}
	if got := UnitRate(p, true); got != 0 {
		t.Errorf("rate = %v, want 0", got)
	}
	if got := LineTotal(p, true, 40); got != 0 {
		t.Errorf("total = %v, want 0", got)
	}
}
