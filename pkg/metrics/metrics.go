package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the API surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{duration: duration, requests: requests}
}

// ObserveRequest records a completed request.
func (h *HTTPMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	labels := []string{normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)}
	h.duration.WithLabelValues(labels...).Observe(duration.Seconds())
	h.requests.WithLabelValues(labels...).Inc()
}

// DiscountMetrics records eligibility-engine activity.
type DiscountMetrics struct {
	evaluations *prometheus.CounterVec
	applied     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewDiscountMetrics registers the discount engine metrics on the provided registerer.
func NewDiscountMetrics(reg prometheus.Registerer) *DiscountMetrics {
	if reg == nil {
		return &DiscountMetrics{}
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_evaluations_total",
		Help: "Discount eligibility evaluations by outcome.",
	}, []string{"outcome"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discounts_applied_total",
		Help: "Discounts applied to priced orders.",
	}, []string{"discount"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "discount_evaluation_duration_seconds",
		Help:    "Duration of full-order discount evaluation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	reg.MustRegister(evaluations, applied, duration)
	return &DiscountMetrics{
		evaluations: evaluations,
		applied:     applied,
		duration:    duration,
	}
}

// IncEvaluation increments the evaluation counter for the given outcome
// ("eligible" or "ineligible").
func (d *DiscountMetrics) IncEvaluation(outcome string) {
	if d == nil || d.evaluations == nil {
		return
	}
	d.evaluations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncApplied increments the applied counter for the named discount.
func (d *DiscountMetrics) IncApplied(discount string) {
	if d == nil || d.applied == nil {
		return
	}
	d.applied.WithLabelValues(normalizeLabel(discount)).Inc()
}

// ObserveEvaluation records the duration of a full-order evaluation. Source
// is "cache" or "db" depending on where the active set came from.
func (d *DiscountMetrics) ObserveEvaluation(source string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
