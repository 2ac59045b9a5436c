package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gamevault/storefront-backend/api/controllers"
	"github.com/gamevault/storefront-backend/api/middleware"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/pkg/config"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	manager *storefront.Manager,
	storefrontMetrics *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, storefrontMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, manager, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg, cfg.Storage.SessionTTL))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(manager, cfg.Catalog.PageSize, logg))
			r.Get("/facets", controllers.CatalogFacets(manager, logg))
			r.Get("/{productId}", controllers.CatalogGet(manager, logg))
			r.Get("/{productId}/related", controllers.CatalogRelated(manager, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(manager, logg))
			r.Delete("/", controllers.CartClear(manager, logg))
			r.Post("/items", controllers.CartAddItem(manager, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(manager, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(manager, logg))
			r.Post("/items/{productId}/save-for-later", controllers.CartSaveForLater(manager, logg))
			r.Post("/discount", controllers.CartApplyDiscount(manager, logg))
			r.Delete("/discount", controllers.CartRemoveDiscount(manager, logg))
			r.Post("/checkout", controllers.CartCheckout(manager, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(manager, logg))
			r.Post("/{productId}/toggle", controllers.WishlistToggle(manager, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(manager, logg))
		})

		r.Get("/recently-viewed", controllers.RecentlyViewed(manager, logg))

		r.Route("/compare", func(r chi.Router) {
			r.Get("/", controllers.CompareList(manager, logg))
			r.Post("/", controllers.CompareAdd(manager, logg))
			r.Delete("/", controllers.CompareClear(manager, logg))
			r.Delete("/{productId}", controllers.CompareRemove(manager, logg))
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeGet(manager, logg))
			r.Put("/", controllers.ThemeSet(manager, logg))
			r.Post("/toggle", controllers.ThemeToggle(manager, logg))
			r.Delete("/", controllers.ThemeReset(manager, logg))
		})
	})

	return r
}
