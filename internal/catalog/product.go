package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is read-only reference data; carts and wishlists hold it by id only.
type Product struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	Brand         string              `json:"brand"`
	Description   string              `json:"description"`
	Image         string              `json:"image"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	Rating        float64             `json:"rating"`
	Reviews       int                 `json:"reviews"`
	Badges        []string            `json:"badges"`
	InStock       bool                `json:"in_stock"`
	Featured      bool                `json:"featured"`
}

// HasDiscount reports whether the product shows a discount badge.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}

// DiscountPercent returns the whole-number markdown relative to the original price.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() || p.OriginalPrice.Decimal.IsZero() {
		return 0
	}
	pct := p.OriginalPrice.Decimal.Sub(p.Price).
		Div(p.OriginalPrice.Decimal).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}
