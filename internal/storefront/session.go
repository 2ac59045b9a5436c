package storefront

import (
	"context"

	"github.com/gamevault/storefront-backend/internal/cart"
	"github.com/gamevault/storefront-backend/internal/compare"
	"github.com/gamevault/storefront-backend/internal/recent"
	"github.com/gamevault/storefront-backend/internal/theme"
	"github.com/gamevault/storefront-backend/internal/wishlist"
	"github.com/gamevault/storefront-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	MessageCartEmpty       = "Your cart is empty"
	MessageCheckoutPending = "Checkout functionality would be implemented here"
)

// Session bundles the per-visitor state backed by one session store.
type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Recent   *recent.Store
	Compare  *compare.Store
	Theme    *theme.Store

	metrics *metrics.StorefrontMetrics
}

// ApplyDiscount applies code to the cart and records the outcome.
func (s *Session) ApplyDiscount(ctx context.Context, code string) (cart.Discount, bool) {
	d, ok := s.Cart.ApplyDiscount(ctx, code)
	if ok {
		s.metrics.ObserveDiscount(metrics.DiscountApplied)
	} else {
		s.metrics.ObserveDiscount(metrics.DiscountRejected)
	}
	return d, ok
}

// RemoveDiscount clears the active discount and records it.
func (s *Session) RemoveDiscount(ctx context.Context) {
	s.Cart.RemoveDiscount(ctx)
	s.metrics.ObserveDiscount(metrics.DiscountRemoved)
}

// SaveForLater moves a cart line into the wishlist.
func (s *Session) SaveForLater(ctx context.Context, productID int64, opts cart.Options) bool {
	return s.Cart.SaveForLater(ctx, productID, opts, s.Wishlist)
}

// CheckoutResult is the placeholder outcome of a checkout request.
type CheckoutResult struct {
	Ready     bool            `json:"ready"`
	Message   string          `json:"message"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// Checkout reports whether the cart could proceed. No order is placed.
func Checkout(s *Session) CheckoutResult {
	summary := s.Cart.Summary()
	if len(summary.Items) == 0 {
		return CheckoutResult{Message: MessageCartEmpty, Total: decimal.Zero}
	}
	return CheckoutResult{
		Ready:     true,
		Message:   MessageCheckoutPending,
		ItemCount: summary.ItemCount,
		Total:     summary.Total,
	}
}
