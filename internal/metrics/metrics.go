// Package metrics exposes the daemon's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connects counts completed portal connect callbacks.
	Connects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_connects_total",
		Help: "Portal connect callbacks by result.",
	}, []string{"result"})

	// Transfers counts relay submissions.
	Transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_transfers_total",
		Help: "Sponsored transfer submissions by result.",
	}, []string{"result"})

	// Confirmations counts confirmation poll outcomes.
	Confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_confirmations_total",
		Help: "Transfer confirmation outcomes.",
	}, []string{"status"})
)
