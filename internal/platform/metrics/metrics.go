package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic_cash_register"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	registersOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "registers_opened_total",
			Help:      "Total number of cash registers opened.",
		},
	)

	registersClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "registers_closed_total",
			Help:      "Total number of cash registers closed, by difference classification.",
		},
		[]string{"classification"},
	)

	movementsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "movements_recorded_total",
			Help:      "Total number of movements appended to registers.",
		},
		[]string{"kind", "payment_method"},
	)

	documentNumbersIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "issued_total",
			Help:      "Total number of document numbers issued.",
		},
		[]string{"entity_type"},
	)

	sequenceConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "cas_conflicts_total",
			Help:      "Total number of lost compare-and-swap attempts while reserving a number.",
		},
		[]string{"entity_type"},
	)

	sequenceExhausted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "exhausted_total",
			Help:      "Total number of reservations that gave up after the retry bound.",
		},
		[]string{"entity_type"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		registersOpened,
		registersClosed,
		movementsRecorded,
		documentNumbersIssued,
		sequenceConflicts,
		sequenceExhausted,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted marks an in-flight request and returns the function that records its outcome.
func RequestStarted() func(method, route string, status int) {
	start := time.Now()
	httpInFlight.Inc()
	return func(method, route string, status int) {
		httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordRegisterOpened counts an opened register.
func RecordRegisterOpened() {
	registersOpened.Inc()
}

// RecordRegisterClosed counts a closed register by classification.
func RecordRegisterClosed(classification string) {
	registersClosed.WithLabelValues(classification).Inc()
}

// RecordMovement counts an appended movement.
func RecordMovement(kind, paymentMethod string) {
	movementsRecorded.WithLabelValues(kind, paymentMethod).Inc()
}

// RecordDocumentNumberIssued counts an issued document number.
func RecordDocumentNumberIssued(entityType string) {
	documentNumbersIssued.WithLabelValues(entityType).Inc()
}

// RecordSequenceConflict counts a lost compare-and-swap.
func RecordSequenceConflict(entityType string) {
	sequenceConflicts.WithLabelValues(entityType).Inc()
}

// RecordSequenceExhausted counts a reservation that ran out of retries.
func RecordSequenceExhausted(entityType string) {
	sequenceExhausted.WithLabelValues(entityType).Inc()
}

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
