package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/cart"
	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storefront"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

// optionQueryPrefix marks query parameters that carry line item options,
// e.g. ?option.edition=deluxe.
const optionQueryPrefix = "option."

type addCartItemRequest struct {
	ProductID int64             `json:"product_id" validate:"required,gt=0"`
	Quantity  int               `json:"quantity" validate:"omitempty,min=1"`
	Options   map[string]string `json:"options" validate:"omitempty,max=8,dive,keys,max=32,endkeys,max=64"`
}

type updateCartItemRequest struct {
	Quantity int               `json:"quantity" validate:"min=0"`
	Options  map[string]string `json:"options" validate:"omitempty,max=8,dive,keys,max=32,endkeys,max=64"`
}

type applyDiscountRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

type cartLineResponse struct {
	cart.LineItem
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartResponse struct {
	cart.Summary
	Lines []cartLineResponse `json:"lines"`
}

func newCartResponse(summary cart.Summary, products catalog.Lookup) cartResponse {
	lines := make([]cartLineResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		product, ok := products.Lookup(item.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, cartLineResponse{
			LineItem:  item,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			LineTotal: product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return cartResponse{Summary: summary, Lines: lines}
}

func optionsFromQuery(r *http.Request) (cart.Options, error) {
	opts, err := validators.QueryPrefixed(r, optionQueryPrefix)
	if err != nil {
		return nil, err
	}
	return cart.Options(opts), nil
}

func writeCart(w http.ResponseWriter, mgr *storefront.Manager, sess *storefront.Session) {
	responses.WriteSuccess(w, newCartResponse(sess.Cart.Summary(), mgr.Catalog()))
}

// CartGet returns the priced cart for the session.
func CartGet(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		writeCart(w, mgr, sess)
	}
}

// CartAddItem adds a product variant to the cart.
func CartAddItem(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		quantity := payload.Quantity
		if quantity == 0 {
			quantity = cart.MinQuantity
		}
		if !sess.Cart.AddItem(ctx, payload.ProductID, quantity, cart.Options(payload.Options)) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(sess.Cart.Summary(), mgr.Catalog()))
	}
}

// CartUpdateItem sets the quantity of a line; zero removes it.
func CartUpdateItem(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Cart.UpdateQuantity(ctx, id, payload.Quantity, cart.Options(payload.Options))
		writeCart(w, mgr, sess)
	}
}

// CartRemoveItem deletes a line. Variant options come from option.* query parameters.
func CartRemoveItem(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts, err := optionsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Cart.RemoveItem(r.Context(), id, opts)
		writeCart(w, mgr, sess)
	}
}

func CartClear(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Cart.Clear(r.Context())
		writeCart(w, mgr, sess)
	}
}

// CartSaveForLater moves a line from the cart into the wishlist.
func CartSaveForLater(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		opts, err := optionsFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		if !sess.SaveForLater(ctx, id, opts) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found"))
			return
		}
		writeCart(w, mgr, sess)
	}
}

// CartApplyDiscount applies a promo code. Unknown codes are a validation error.
func CartApplyDiscount(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		code := validators.SanitizeString(payload.Code, 32)
		if _, applied := sess.ApplyDiscount(ctx, code); !applied {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount code").
				WithDetails(map[string]any{"code": strings.ToUpper(code)}))
			return
		}
		writeCart(w, mgr, sess)
	}
}

func CartRemoveDiscount(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.RemoveDiscount(r.Context())
		writeCart(w, mgr, sess)
	}
}

// CartCheckout reports checkout readiness. No order is placed.
func CartCheckout(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, storefront.Checkout(sess))
	}
}
