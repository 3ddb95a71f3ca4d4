package cart

import (
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the denormalized product the backend embeds in each
// cart line for display.
type ProductSnapshot struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// VariantSnapshot is the denormalized variant embedded in a cart line. The
// backend may omit it entirely, in which case the line cannot be merged.
type VariantSnapshot struct {
	ID           string           `json:"_id"`
	Price        decimal.Decimal  `json:"price"`
	Stock        int              `json:"stock"`
	Attributes   types.Attributes `json:"attributes,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
	Product      *ProductSnapshot `json:"product_id,omitempty"`
}

// Line is one row in the shopping cart.
type Line struct {
	ID       string           `json:"_id"`
	Quantity int              `json:"quantity"`
	Checked  bool             `json:"is_checked"`
	Variant  *VariantSnapshot `json:"variant_id,omitempty"`
}

// VariantID returns the referenced variant id, empty when the backend did
// not populate the variant.
func (l Line) VariantID() string {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.ID
}

// UnitPrice is the display price for the line; zero without a variant.
func (l Line) UnitPrice() decimal.Decimal {
	if l.Variant == nil {
		return decimal.Zero
	}
	return l.Variant.Price
}

// Subtotal is price x quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AtStockCeiling reports whether the quantity already equals the variant's
// stock, meaning increment must be refused locally. Lines without a variant
// have no known ceiling.
func (l Line) AtStockCeiling() bool {
	if l.Variant == nil {
		return false
	}
	return l.Quantity >= l.Variant.Stock
}
