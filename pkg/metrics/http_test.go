package metrics

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	route := "/api/v1/estimates"
	metrics.ObserveRequest(http.MethodPost, route, http.StatusCreated, 250*time.Millisecond)
	metrics.ObserveRequest(http.MethodPost, route, http.StatusCreated, 50*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", route); err != nil {
		t.Fatalf("fetch total: %v", err)
	} else if got != 2 {
		t.Fatalf("expected total=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", route); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestInvoiceMetricsCountsByTaxMode(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewInvoiceMetrics(reg)
	metrics.IncGenerated("split")
	metrics.IncGenerated("split")
	metrics.IncGenerated("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "invoices_generated_total", "tax_mode", "split"); err != nil {
		t.Fatalf("fetch split: %v", err)
	} else if got != 2 {
		t.Fatalf("expected split=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "invoices_generated_total", "tax_mode", "unknown"); err != nil {
		t.Fatalf("fetch unknown: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	metrics := NewHTTPMetrics(nil)
	metrics.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	invoices := NewInvoiceMetrics(nil)
	invoices.IncGenerated("none")
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
