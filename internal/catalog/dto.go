package catalog

import (
	"github.com/ramadhanarif/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// Variant is one purchasable configuration of a product.
type Variant struct {
	ID           string           `json:"_id"`
	ProductID    string           `json:"product_id,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	Stock        int              `json:"stock"`
	Attributes   types.Attributes `json:"attributes,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
}

// ImagePath returns the variant's own image reference: direct fields first,
// then URL-like attribute values.
func (v Variant) ImagePath() string {
	for _, direct := range []string{v.ThumbnailURL, v.ImageURL, v.Thumbnail} {
		if direct != "" {
			return direct
		}
	}
	return v.Attributes.ImagePath()
}

type Product struct {
	ID           string           `json:"_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	CategoryID   string           `json:"category_id,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	TotalStock   *int             `json:"total_stock,omitempty"`
	Variants     []Variant        `json:"variants,omitempty"`
}

// EffectivePrice is the product-level price: the backend's aggregate when
// present, otherwise the cheapest variant.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.Price != nil {
		return *p.Price
	}
	var min decimal.Decimal
	for i, variant := range p.Variants {
		if i == 0 || variant.Price.LessThan(min) {
			min = variant.Price
		}
	}
	return min
}

// EffectiveStock is the product-level stock: the backend's aggregate when
// present, otherwise the sum across variants.
func (p Product) EffectiveStock() int {
	if p.TotalStock != nil {
		return *p.TotalStock
	}
	total := 0
	for _, variant := range p.Variants {
		total += variant.Stock
	}
	return total
}

// ImagePath returns the product's own thumbnail reference.
func (p Product) ImagePath() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.Thumbnail
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// OptionGroup is one attribute dimension (e.g. size) with its selectable
// values in first-seen order across variants.
type OptionGroup struct {
	Name   string
	Values []string
}
