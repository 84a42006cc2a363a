// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Contract read-only call volume and failures
//   - Decoder fallbacks (responses that hit the permissive defaults)
//   - Transaction submissions by function
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ContractReads counts read-only contract calls by function name.
	ContractReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_contract_reads_total",
		Help: "Read-only contract calls issued, by function.",
	}, []string{"function"})

	// ContractReadFailures counts transport or node failures on reads.
	ContractReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_contract_read_failures_total",
		Help: "Read-only contract calls that failed, by function.",
	}, []string{"function"})

	// Submissions counts transactions accepted for broadcast by function.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_tx_submissions_total",
		Help: "Contract call transactions accepted for broadcast, by function.",
	}, []string{"function"})

	// ScanDuration observes full item scan latency.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "farm_item_scan_duration_seconds",
		Help:    "Duration of full marketplace item scans.",
		Buckets: prometheus.DefBuckets,
	})
)
