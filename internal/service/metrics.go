package service

import "github.com/prometheus/client_golang/prometheus"

var (
	transactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "centralbank",
			Subsystem: "engine",
			Name:      "transactions_total",
			Help:      "Total transactions applied, by action tag and outcome.",
		},
		[]string{"action", "outcome"},
	)

	lockHoldSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "centralbank",
			Subsystem: "engine",
			Name:      "lock_hold_seconds",
			Help:      "Time spent holding the state lock per transaction, by lock kind.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		},
		[]string{"lock"},
	)

	totalBalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "centralbank",
			Subsystem: "engine",
			Name:      "total_balance",
			Help:      "Sum of every account's balance, the money-supply metric of SPEC_FULL.md §C.1.",
		},
	)
)

func init() {
	prometheus.MustRegister(transactionsTotal, lockHoldSeconds, totalBalanceGauge)
}
