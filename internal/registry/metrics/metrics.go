package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
// Tracks claim/transfer outcomes and critical path durations.
type Metrics struct {
	ClaimsTotal      prometheus.Counter
	ClaimFailures    prometheus.Counter
	TransfersTotal   prometheus.Counter
	TransferFailures prometheus.Counter
	ClaimDuration    prometheus.Histogram
	TransferDuration prometheus.Histogram
}

// New creates a Metrics instance with all registry module metrics registered.
func New() *Metrics {
	return &Metrics{
		ClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namereg_claims_total",
			Help: "Total number of successful name claims",
		}),
		ClaimFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namereg_claim_failures_total",
			Help: "Total number of rejected name claims",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namereg_transfers_total",
			Help: "Total number of successful ownership transfers",
		}),
		TransferFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "namereg_transfer_failures_total",
			Help: "Total number of rejected ownership transfers",
		}),
		ClaimDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "namereg_claim_duration_seconds",
			Help:    "Duration of claim operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "namereg_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveClaim records a claim outcome and its duration.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveClaim(start time.Time, err error) {
	m.ClaimDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.ClaimFailures.Inc()
		return
	}
	m.ClaimsTotal.Inc()
}

// ObserveTransfer records a transfer outcome and its duration.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveTransfer(start time.Time, err error) {
	m.TransferDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.TransferFailures.Inc()
		return
	}
	m.TransfersTotal.Inc()
}
