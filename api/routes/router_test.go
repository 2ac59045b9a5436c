package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gamevault/storefront-backend/api/middleware"
	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/internal/storefront"
	"github.com/gamevault/storefront-backend/pkg/config"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:         "dev",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Storage: config.StorageConfig{Backend: config.StorageBackendMemory, SessionTTL: time.Hour},
		Catalog: config.CatalogConfig{PageSize: 12},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(reg)
	manager, err := storefront.NewManager(storefront.ManagerParams{
		Backend: storage.NewMemoryBackend(),
		Catalog: catalog.Default(),
		Logger:  logger.Nop(),
		Metrics: storefrontMetrics,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return NewRouter(testConfig(), logger.Nop(), manager, storefrontMetrics, reg)
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
		if resp.Header().Get(middleware.SessionHeader) != "" {
			t.Fatalf("health routes should not mint sessions")
		}
	}
}

func TestAPIRoutesMintSession(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get(middleware.SessionHeader) == "" {
		t.Fatalf("expected session header on api response")
	}
}

func TestSessionStateFollowsHeader(t *testing.T) {
	router := newTestRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":2}`))
	add.Header.Set(middleware.SessionHeader, "visitor-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	get.Header.Set(middleware.SessionHeader, "visitor-a")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, get)
	if !strings.Contains(resp.Body.String(), `"item_count":2`) {
		t.Fatalf("expected cart for visitor-a, got %s", resp.Body.String())
	}

	other := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	other.Header.Set(middleware.SessionHeader, "visitor-b")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, other)
	if !strings.Contains(resp.Body.String(), `"item_count":0`) {
		t.Fatalf("expected empty cart for visitor-b, got %s", resp.Body.String())
	}
}

func TestMetricsEndpointExposesCartMutations(t *testing.T) {
	router := newTestRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":4}`))
	router.ServeHTTP(httptest.NewRecorder(), add)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `storefront_cart_mutations_total{op="add"} 1`) {
		t.Fatalf("expected cart mutation metric, got %s", body)
	}
	if !strings.Contains(string(body), "http_request_duration_seconds") {
		t.Fatalf("expected http duration metric")
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
