package transfers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	transfersIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flite_transfers_issued_total",
		Help: "Ledger records created, by kind and final status",
	}, []string{"kind", "status"})

	balanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flite_balance_computation_seconds",
		Help:    "Time spent folding the ledger into a balance",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	referenceRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flite_reference_generator_calls_total",
		Help: "Reference generation attempts including retries",
	})
)
