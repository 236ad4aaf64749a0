// models/product.go
package models

import "time"

// PriceType selects which rate fields on a Product are authoritative.
type PriceType string

const (
	// PriceFixed: MRP, SellingPrice and FranchisePrice are absolute amounts.
	PriceFixed PriceType = "fixed"
	// PriceUnit: the UnitRate* fields are per-unit amounts (UnitLabel names
	// the unit); the flat price triple is zeroed and never read.
	PriceUnit PriceType = "unit"
	// PricePercentage: SellingPrice/FranchisePrice hold raw percentages
	// (6 means 6%) applied to a buyer-declared base value.
	PricePercentage PriceType = "percentage"
)

// SystemVendorID marks house products not owned by any vendor account.
const SystemVendorID = "System"

// Product model. Exactly one rate triple is authoritative per PriceType.
type Product struct {
	ID                int64     `json:"id" bson:"_id"`
	SKU               string    `json:"sku" bson:"sku"`
	PriceType         PriceType `json:"priceType" bson:"priceType"`
	UnitLabel         string    `json:"unitLabel,omitempty" bson:"unitLabel,omitempty"`
	Category          string    `json:"category" bson:"category"`
	City              string    `json:"city" bson:"city"`
	Name              string    `json:"name" bson:"name"`
	MRP               float64   `json:"mrp" bson:"mrp"`
	UnitRateMRP       float64   `json:"unitRateMRP,omitempty" bson:"unitRateMRP,omitempty"`
	UnitRateSelling   float64   `json:"unitRateSelling,omitempty" bson:"unitRateSelling,omitempty"`
	UnitRateFranchise float64   `json:"unitRateFranchise,omitempty" bson:"unitRateFranchise,omitempty"`
	SellingPrice      float64   `json:"sellingPrice" bson:"sellingPrice"`
	FranchisePrice    float64   `json:"franchisePrice" bson:"franchisePrice"`

	// Optional split-rate policy for percentage products: when the buyer's
	// base value exceeds SellingPriceThreshold the Above rate applies,
	// otherwise the Below rate. Zero threshold disables the policy.
	SellingPriceThreshold float64 `json:"sellingPriceThreshold,omitempty" bson:"sellingPriceThreshold,omitempty"`
	FranchisePercentAbove float64 `json:"franchisePercentAbove,omitempty" bson:"franchisePercentAbove,omitempty"`
	FranchisePercentBelow float64 `json:"franchisePercentBelow,omitempty" bson:"franchisePercentBelow,omitempty"`

	ShortDescription string          `json:"shortDescription" bson:"shortDescription"`
	Image            string          `json:"image,omitempty" bson:"image,omitempty"`
	GalleryImages    []string        `json:"galleryImages,omitempty" bson:"galleryImages,omitempty"`
	VideoLink        string          `json:"videoLink,omitempty" bson:"videoLink,omitempty"`
	Reviews          []ProductReview `json:"reviews,omitempty" bson:"reviews,omitempty"`
	IsVisible        bool            `json:"isVisible" bson:"isVisible"`
	VendorID         string          `json:"vendorId" bson:"vendorId"`
	CreatedAt        time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type ProductReview struct {
	Rating   int    `json:"rating" bson:"rating"`
	Comment  string `json:"comment" bson:"comment"`
	Reviewer string `json:"reviewer" bson:"reviewer"`
	PhotoURL string `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Date     string `json:"date" bson:"date"`
}

// ProductRequest is the body for product create/update (vendor and admin).
type ProductRequest struct {
	Name                  string    `json:"name" validate:"required"`
	SKU                   string    `json:"sku,omitempty"`
	PriceType             PriceType `json:"priceType" validate:"required"`
	UnitLabel             string    `json:"unitLabel,omitempty"`
	Category              string    `json:"category" validate:"required"`
	City                  string    `json:"city" validate:"required"`
	MRP                   float64   `json:"mrp"`
	SellingPrice          float64   `json:"sellingPrice"`
	FranchisePrice        float64   `json:"franchisePrice"`
	SellingPriceThreshold float64   `json:"sellingPriceThreshold,omitempty"`
	FranchisePercentAbove float64   `json:"franchisePercentAbove,omitempty"`
	FranchisePercentBelow float64   `json:"franchisePercentBelow,omitempty"`
	ShortDescription      string    `json:"shortDescription,omitempty"`
	Image                 string    `json:"image,omitempty"`
	IsVisible             *bool     `json:"isVisible,omitempty"`
}
