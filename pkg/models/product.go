package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kadualabs/vendorhub/pkg/enums"
)

// ProductImage is one ordered catalog image. At most one image per product
// carries the main designation.
type ProductImage struct {
	ID     string `json:"id"`
	URI    string `json:"uri"`
	Order  int    `json:"order"`
	IsMain bool   `json:"isMain,omitempty"`
}

// ProductVideo is the single optional video attached to a product.
type ProductVideo struct {
	ID        string `json:"id"`
	URI       string `json:"uri"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// ProductVariant is a priced, stocked SKU-level option of a product.
type ProductVariant struct {
	ID        string           `json:"id"`
	Size      string           `json:"size,omitempty"`
	Color     string           `json:"color,omitempty"`
	Material  string           `json:"material,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
	Stock     int              `json:"stock"`
	IsActive  bool             `json:"isActive"`
}

// Dimensions holds optional physical measurements.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product is a vendor-owned catalog entry.
type Product struct {
	ID          string              `json:"_id,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Subcategory string              `json:"subcategory,omitempty"`
	BasePrice   decimal.Decimal     `json:"basePrice"`
	SalePrice   *decimal.Decimal    `json:"salePrice,omitempty"`
	Images      []ProductImage      `json:"images"`
	Video       *ProductVideo       `json:"video,omitempty"`
	Variants    []ProductVariant    `json:"variants"`
	Tags        []string            `json:"tags"`
	Brand       string              `json:"brand,omitempty"`
	Weight      float64             `json:"weight,omitempty"`
	Dimensions  *Dimensions         `json:"dimensions,omitempty"`
	Status      enums.ProductStatus `json:"status"`
	IsActive    bool                `json:"isActive"`
	TotalStock  int                 `json:"totalStock"`
	Vendor      string              `json:"vendor"`
	CreatedAt   time.Time           `json:"createdAt,omitempty"`
	UpdatedAt   time.Time           `json:"updatedAt,omitempty"`
}

// ComputeTotalStock sums the stock across active and inactive variants.
func (p Product) ComputeTotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// MainImage returns the image flagged as main, falling back to the first
// image by display order.
func (p Product) MainImage() *ProductImage {
	var first *ProductImage
	for i := range p.Images {
		img := &p.Images[i]
		if img.IsMain {
			return img
		}
		if first == nil || img.Order < first.Order {
			first = img
		}
	}
	return first
}

// ProductStats is the vendor catalog summary returned by the stats endpoint.
type ProductStats struct {
	Total      int `json:"total"`
	Published  int `json:"published"`
	Draft      int `json:"draft"`
	Hidden     int `json:"hidden"`
	Archived   int `json:"archived"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}
