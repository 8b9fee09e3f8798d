// Package metrics collects Prometheus metrics for HTTP traffic, check-ins and
// AI suggestions, and exposes them for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface used by middleware and services.
type Recorder interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
	CheckInRecorded(created bool)
	SuggestionServed(source string)
	ProviderFailure(provider string)
}

// Collector records metrics on a Prometheus registry.
type Collector struct {
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	checkIns         *prometheus.CounterVec
	suggestions      *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "habithero_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "habithero_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "habithero_checkins_recorded_total",
			Help: "Check-ins recorded, by whether a new row was created or an existing one updated",
		}, []string{"result"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "habithero_ai_suggestions_served_total",
			Help: "Suggestion responses served, by source",
		}, []string{"source"}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "habithero_ai_provider_failures_total",
			Help: "AI provider calls that failed after all retries",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.checkIns,
		c.suggestions,
		c.providerFailures,
	)
	return c
}

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, statusLabel(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// CheckInRecorded counts a check-in upsert.
func (c *Collector) CheckInRecorded(created bool) {
	result := "updated"
	if created {
		result = "created"
	}
	c.checkIns.WithLabelValues(result).Inc()
}

// SuggestionServed counts a suggestion response by source.
func (c *Collector) SuggestionServed(source string) {
	c.suggestions.WithLabelValues(source).Inc()
}

// ProviderFailure counts a failed AI provider call.
func (c *Collector) ProviderFailure(provider string) {
	c.providerFailures.WithLabelValues(provider).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveRequest(string, string, int, time.Duration) {}
func (Nop) CheckInRecorded(bool)                              {}
func (Nop) SuggestionServed(string)                           {}
func (Nop) ProviderFailure(string)                            {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
