package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.ObserveCartMutation("add", 149.99)
	metrics.ObserveCartMutation("add", 209.97)
	metrics.ObserveCartMutation("", 0)
	metrics.ObserveDiscount(DiscountApplied)
	metrics.ObserveDiscount(DiscountRejected)
	metrics.IncSessionsOpened()
	metrics.ObserveHTTP(http.MethodGet, "/api/v1/cart", http.StatusOK, 20*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "storefront_cart_mutations_total", "op", "add"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "storefront_cart_mutations_total", "op", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "storefront_discount_codes_total", "result", DiscountRejected); err != nil || got != 1 {
		t.Fatalf("expected rejected=1, got %f (%v)", got, err)
	}

	subtotal := findMetricFamily(mfs, "storefront_cart_subtotal_dollars")
	if subtotal == nil || subtotal.GetMetric()[0].GetHistogram().GetSampleCount() != 3 {
		t.Fatalf("expected 3 subtotal samples, got %+v", subtotal)
	}

	sessions := findMetricFamily(mfs, "storefront_sessions_opened_total")
	if sessions == nil || sessions.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatal("expected one opened session")
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/v1/cart"); err != nil {
		t.Fatalf("fetch http duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	metrics := NewStorefrontMetrics(nil)
	metrics.ObserveCartMutation("add", 1)
	metrics.ObserveDiscount(DiscountApplied)
	metrics.IncSessionsOpened()
	metrics.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	var nilMetrics *StorefrontMetrics
	nilMetrics.ObserveDiscount(DiscountRemoved)
}

func TestHandlerServesTextFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewStorefrontMetrics(reg).ObserveDiscount(DiscountApplied)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `storefront_discount_codes_total{result="applied"} 1`) {
		t.Fatalf("expected discount counter in output:\n%s", body)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
