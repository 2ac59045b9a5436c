package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/api/validators"
	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storefront"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

const relatedLimit = 4

type productDetailResponse struct {
	catalog.Product
	DiscountPercent int  `json:"discount_percent"`
	InWishlist      bool `json:"in_wishlist"`
}

type facetsResponse struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// CatalogList returns one page of products matching the query string.
func CatalogList(mgr *storefront.Manager, pageSize int, logg *logger.Logger) http.HandlerFunc {
	if pageSize <= 0 || pageSize > catalog.MaxPageSize {
		pageSize = catalog.DefaultPageSize
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "page_size", pageSize, 1, catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := catalog.Query{
			Category:   validators.SanitizeQuery(r, "category", 0),
			Brand:      validators.SanitizeQuery(r, "brand", 0),
			PriceRange: validators.SanitizeQuery(r, "price_range", 0),
			Search:     validators.SanitizeQuery(r, "search", catalog.MaxSearchLength),
			Sort:       validators.SanitizeQuery(r, "sort", 0),
			Page:       page,
			PageSize:   size,
		}
		if err := validators.ValidateStruct(&query); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, mgr.Catalog().Filter(query))
	}
}

// CatalogFacets lists the categories and brands available for filtering.
func CatalogFacets(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		c := mgr.Catalog()
		responses.WriteSuccess(w, facetsResponse{Categories: c.Categories(), Brands: c.Brands()})
	}
}

// CatalogGet returns a single product and records it as recently viewed.
func CatalogGet(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
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
		product, found := mgr.Catalog().Lookup(id)
		if !found {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		sess.Recent.Record(ctx, id)

		responses.WriteSuccess(w, productDetailResponse{
			Product:         product,
			DiscountPercent: product.DiscountPercent(),
			InWishlist:      sess.Wishlist.Contains(id),
		})
	}
}

// CatalogRelated returns products from the same category.
func CatalogRelated(mgr *storefront.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, found := mgr.Catalog().Lookup(id); !found {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, mgr.Catalog().Related(id, relatedLimit))
	}
}
