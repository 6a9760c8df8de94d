package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request throughput and latency per route.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Completed HTTP requests.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, total)
	return &HTTPMetrics{
		duration: duration,
		total:    total,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	route = normalizeLabel(route)
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.total.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// InvoiceMetrics counts invoice generation outcomes.
type InvoiceMetrics struct {
	generated *prometheus.CounterVec
}

// NewInvoiceMetrics registers the invoice counters on the provided registerer.
func NewInvoiceMetrics(reg prometheus.Registerer) *InvoiceMetrics {
	if reg == nil {
		return &InvoiceMetrics{}
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_generated_total",
		Help: "Invoices generated, by tax mode.",
	}, []string{"tax_mode"})
	reg.MustRegister(generated)
	return &InvoiceMetrics{generated: generated}
}

// IncGenerated increments the generated counter for the given tax mode.
func (m *InvoiceMetrics) IncGenerated(taxMode string) {
	if m == nil || m.generated == nil {
		return
	}
	m.generated.WithLabelValues(normalizeLabel(taxMode)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
