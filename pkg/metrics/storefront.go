package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Discount outcomes recorded by ObserveDiscount.
const (
	DiscountApplied  = "applied"
	DiscountRejected = "rejected"
	DiscountRemoved  = "removed"
)

// StorefrontMetrics records cart activity and HTTP traffic.
type StorefrontMetrics struct {
	cartMutations  *prometheus.CounterVec
	discounts      *prometheus.CounterVec
	cartSubtotal   prometheus.Histogram
	sessionsOpened prometheus.Counter
	httpDuration   *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront collectors on reg. A nil
// registerer yields a recorder whose methods are no-ops.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_discount_codes_total",
		Help: "Discount code submissions by result.",
	}, []string{"result"})
	cartSubtotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_cart_subtotal_dollars",
		Help:    "Cart subtotal observed after each mutation.",
		Buckets: []float64{0, 25, 50, 100, 200, 500, 1000, 2500},
	})
	sessionsOpened := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sessions_opened_total",
		Help: "Storefront sessions loaded from storage.",
	})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(cartMutations, discounts, cartSubtotal, sessionsOpened, httpDuration)
	return &StorefrontMetrics{
		cartMutations:  cartMutations,
		discounts:      discounts,
		cartSubtotal:   cartSubtotal,
		sessionsOpened: sessionsOpened,
		httpDuration:   httpDuration,
	}
}

// ObserveCartMutation counts a cart mutation and records the resulting subtotal.
func (m *StorefrontMetrics) ObserveCartMutation(op string, subtotal float64) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
	m.cartSubtotal.Observe(subtotal)
}

// ObserveDiscount counts a discount code outcome.
func (m *StorefrontMetrics) ObserveDiscount(result string) {
	if m == nil || m.discounts == nil {
		return
	}
	m.discounts.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncSessionsOpened counts a session loaded from storage.
func (m *StorefrontMetrics) IncSessionsOpened() {
	if m == nil || m.sessionsOpened == nil {
		return
	}
	m.sessionsOpened.Inc()
}

// ObserveHTTP records the duration of a served request.
func (m *StorefrontMetrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
