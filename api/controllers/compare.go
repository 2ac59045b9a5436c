package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/compare"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

type addCompareRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type compareResponse struct {
	Items    []compare.Item `json:"items"`
	Capacity int            `json:"capacity"`
}

func newCompareResponse(s *compare.Store) compareResponse {
	return compareResponse{Items: s.Items(), Capacity: compare.Capacity}
}

func CompareList(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newCompareResponse(sess.Compare))
	}
}

// CompareAdd appends a product. A full list answers 422 with LIMIT_REACHED.
func CompareAdd(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload addCompareRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		if err := sess.Compare.Add(ctx, payload.ProductID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCompareResponse(sess.Compare))
	}
}

func CompareRemove(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
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
		sess.Compare.Remove(r.Context(), id)
		responses.WriteSuccess(w, newCompareResponse(sess.Compare))
	}
}

func CompareClear(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := openSession(w, r, mgr, logg)
		if !ok {
			return
		}
		sess.Compare.Clear(r.Context())
		responses.WriteSuccess(w, newCompareResponse(sess.Compare))
	}
}
