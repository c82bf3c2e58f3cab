// Package metrics exposes Prometheus instrumentation for the ledger and
// the storage layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK is the outcome label for successful operations.
const OutcomeOK = "ok"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	txRetries         prometheus.Counter
	txExhausted       prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitty",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by name and outcome (ok or failure reason).",
		}, []string{"operation", "outcome"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kitty",
			Subsystem: "ledger",
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation latency including transaction retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		txRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "kitty",
			Subsystem: "storage",
			Name:      "tx_retries_total",
			Help:      "Transactions rolled back and re-run after a concurrent write conflict.",
		}),
		txExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "kitty",
			Subsystem: "storage",
			Name:      "tx_conflicts_exhausted_total",
			Help:      "Transactions abandoned after exhausting their retry attempts.",
		}),
	}
}

// RecordOperation counts one ledger operation and observes its latency.
func (m *Metrics) RecordOperation(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordRetry counts a transaction retry.
func (m *Metrics) RecordRetry() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

// RecordExhausted counts a transaction that ran out of attempts.
func (m *Metrics) RecordExhausted() {
	if m == nil {
		return
	}
	m.txExhausted.Inc()
}
