// services/pricing.go
package services

import (
	"math"

	"github.com/nirmaantech/portal_backend/models"
)

// UnitRate returns the effective rate for a product at the given pricing
// tier. For fixed products this is an absolute amount, for unit products a
// per-unit amount, and for percentage products a fraction (6% -> 0.06) to
// be multiplied by the buyer's base value. Missing rate fields read as 0.
func UnitRate(p *models.Product, franchiseTier bool) float64 {
	switch p.PriceType {
	case models.PriceUnit:
		if franchiseTier {
			return p.UnitRateFranchise
		}
		return p.UnitRateSelling
	case models.PricePercentage:
		if franchiseTier {
			return p.FranchisePrice / 100
		}
		return p.SellingPrice / 100
	default:
		if franchiseTier {
			return p.FranchisePrice
		}
		return p.SellingPrice
	}
}

// UnitRateForValue is UnitRate with the optional split-rate policy for
// percentage products applied: when a threshold and both split rates are
// configured, the rate depends on whether the base value clears the
// threshold. The split applies to both tiers. Products without the policy
// fall through to UnitRate.
func UnitRateForValue(p *models.Product, franchiseTier bool, baseValue float64) float64 {
	if p.PriceType == models.PricePercentage && p.SellingPriceThreshold > 0 &&
		p.FranchisePercentAbove > 0 && p.FranchisePercentBelow > 0 {
		if baseValue > p.SellingPriceThreshold {
			return p.FranchisePercentAbove / 100
		}
		return p.FranchisePercentBelow / 100
	}
	return UnitRate(p, franchiseTier)
}

// LineTotal computes the billed amount for one cart line. The amount
// argument is a unit count for fixed/unit products and the buyer-declared
// base value for percentage products.
func LineTotal(p *models.Product, franchiseTier bool, amount float64) float64 {
	return UnitRateForValue(p, franchiseTier, amount) * amount
}

// DiscountPercent returns the rounded discount badge value against MRP.
// Percentage products never display a discount, and a zero MRP
// short-circuits to 0 to avoid dividing by zero. Selling above MRP also
// reads as 0 rather than a negative badge.
func DiscountPercent(p *models.Product, franchiseTier bool) int {
	if p.PriceType == models.PricePercentage {
		return 0
	}
	mrp := p.MRP
	if p.PriceType == models.PriceUnit {
		mrp = p.UnitRateMRP
	}
	if mrp == 0 {
		return 0
	}
	d := int(math.Round((mrp - UnitRate(p, franchiseTier)) / mrp * 100))
	if d < 0 {
		return 0
	}
	return d
}
