package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind selects how a discount value is interpreted.
type DiscountKind string

const (
	DiscountPercentage   DiscountKind = "percentage"
	DiscountFixedAmount  DiscountKind = "fixed"
	DiscountFreeShipping DiscountKind = "shipping"
)

// Discount is the active promotional adjustment. Amount is computed when the
// code is applied and is not recomputed as the cart changes afterwards.
type Discount struct {
	Code        string          `json:"code"`
	Kind        DiscountKind    `json:"kind"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type promo struct {
	kind        DiscountKind
	value       decimal.Decimal
	description string
}

var promoCodes = map[string]promo{
	"SAVE10":    {kind: DiscountPercentage, value: decimal.NewFromInt(10), description: "10% off"},
	"WELCOME20": {kind: DiscountPercentage, value: decimal.NewFromInt(20), description: "20% off"},
	"FREESHIP":  {kind: DiscountFreeShipping, value: decimal.Zero, description: "Free shipping"},
	"SAVE25":    {kind: DiscountFixedAmount, value: decimal.NewFromInt(25), description: "$25 off"},
}

// LookupCode resolves a promo code case-insensitively.
func LookupCode(code string) (Discount, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	p, ok := promoCodes[normalized]
	if !ok {
		return Discount{}, false
	}
	return Discount{
		Code:        normalized,
		Kind:        p.kind,
		Value:       p.value,
		Description: p.description,
	}, true
}

// amountFor evaluates the discount against subtotal.
func (d Discount) amountFor(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case DiscountPercentage:
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixedAmount:
		return decimal.Min(d.Value, subtotal)
	case DiscountFreeShipping:
		return Shipping(subtotal)
	default:
		return decimal.Zero
	}
}

// restore checks a persisted discount against the code table. The descriptor
// is taken from the table; the amount must be a non-negative cent value no
// larger than the code's kind can produce.
func (d Discount) restore() (Discount, bool) {
	known, ok := LookupCode(d.Code)
	if !ok || d.Kind != known.Kind {
		return Discount{}, false
	}
	amount := d.Amount
	if amount.IsNegative() || !amount.Equal(amount.Round(2)) {
		return Discount{}, false
	}
	switch known.Kind {
	case DiscountFixedAmount:
		if amount.GreaterThan(known.Value) {
			return Discount{}, false
		}
	case DiscountFreeShipping:
		if amount.GreaterThan(shippingFee) {
			return Discount{}, false
		}
	}
	known.Amount = amount
	return known, true
}

var (
	freeShippingThreshold = decimal.NewFromInt(50)
	shippingFee           = decimal.RequireFromString("9.99")
	taxRate               = decimal.RequireFromString("0.085")
)

// Shipping returns the flat fee for orders below the free-shipping threshold.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return shippingFee
}

// Tax applies the flat 8.5% rate, rounded half away from zero to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}
