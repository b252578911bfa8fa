package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the storefront
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	PurchasesTotal      *prometheus.CounterVec
	FundingsTotal       *prometheus.CounterVec
	WebhookEventsTotal  *prometheus.CounterVec
}

// New creates and registers all collectors on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "secretshop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		PurchasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secretshop",
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome",
		}, []string{"outcome"}),
		FundingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secretshop",
			Name:      "fundings_total",
			Help:      "Wallet funding confirmations by outcome",
		}, []string{"outcome"}),
		WebhookEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secretshop",
			Name:      "webhook_events_total",
			Help:      "Provider webhook deliveries by result",
		}, []string{"result"}),
	}

	registry.MustRegister(
		m.HTTPRequestDuration,
		m.PurchasesTotal,
		m.FundingsTotal,
		m.WebhookEventsTotal,
	)
	return m
}

// Handler returns the scrape endpoint handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
