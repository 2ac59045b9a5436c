package controllers

import (
	"net/http"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/recent"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

// RecentlyViewed lists the session's most recently viewed products, newest first.
func RecentlyViewed(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", recent.Capacity, 1, recent.Capacity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, sess.Recent.Products(limit))
	}
}
