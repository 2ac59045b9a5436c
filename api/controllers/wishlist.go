package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/internal/wishlist"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

type wishlistResponse struct {
	Items []wishlist.Item `json:"items"`
	Count int             `json:"count"`
}

type wishlistToggleResponse struct {
	wishlistResponse
	Added bool `json:"added"`
}

func newWishlistResponse(s *wishlist.Store) wishlistResponse {
	return wishlistResponse{Items: s.Items(), Count: s.Count()}
}

func WishlistList(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newWishlistResponse(sess.Wishlist))
	}
}

// WishlistToggle adds the product when absent and removes it otherwise.
func WishlistToggle(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		added, known := sess.Wishlist.Toggle(ctx, id)
		if !known {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, wishlistToggleResponse{wishlistResponse: newWishlistResponse(sess.Wishlist), Added: added})
	}
}

// WishlistRemove deletes the product. Removing an absent product is a no-op.
func WishlistRemove(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Wishlist.Remove(r.Context(), id)
		responses.WriteSuccess(w, newWishlistResponse(sess.Wishlist))
	}
}
