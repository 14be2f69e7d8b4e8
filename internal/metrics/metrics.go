package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant"

// Metrics groups the collectors shared by the services.
type Metrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Settlements *prometheus.CounterVec
	ReportFails *prometheus.CounterVec
	CatalogOps  *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// New registers the collectors for service on a fresh registry. Dashes in
// service become underscores in metric names.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	subsystem := strings.ReplaceAll(service, "-", "_")

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	settlements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "settlements_total",
		Help:      "Settled orders by payment method and outcome.",
	}, []string{"method", "outcome"})

	reportFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "settlement_report_failures_total",
		Help:      "Settlements that could not be broadcast.",
	}, []string{"method"})
	catalogOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "catalog_operations_total",
		Help:      "Catalog operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	reg.MustRegister(requests, latency, settlements, reportFails, catalogOps)
	return &Metrics{
		Requests:    requests,
		LatencyMS:   latency,
		Settlements: settlements,
		ReportFails: reportFails,
		CatalogOps:  catalogOps,
		gatherer:    reg,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// ObserveSettlement records one settlement attempt.
func (m *Metrics) ObserveSettlement(method string, err error) {
	outcome := "settled"
	if err != nil {
		outcome = "failed"
	}
	m.Settlements.WithLabelValues(method, outcome).Inc()
}

// ObserveReportFailure records a settlement that happened but was not broadcast.
func (m *Metrics) ObserveReportFailure(method string) {
	m.ReportFails.WithLabelValues(method).Inc()
}

// ObserveCatalogOp records one catalog operation. A nil m records nothing.
func (m *Metrics) ObserveCatalogOp(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.CatalogOps.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
