// Package metrics exposes Prometheus collectors for the chit engine and the
// RPC layer. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "chitwiser"

// Metrics holds every collector the server exports.
type Metrics struct {
	contributions      *prometheus.CounterVec
	contributionAmount prometheus.Counter
	rejections         *prometheus.CounterVec
	bids               prometheus.Counter
	roundsFinalized    prometheus.Counter
	payoutAmount       prometheus.Counter
	groupTransitions   *prometheus.CounterVec
	rpcRequests        *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		contributions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributions_total",
			Help:      "Contributions written to the ledger, by payment mode.",
		}, []string{"payment_mode"}),
		contributionAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contribution_amount_total",
			Help:      "Sum of contribution amounts written to the ledger.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Engine operations rejected with a domain error, by operation and kind.",
		}, []string{"operation", "kind"}),
		bids: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_total",
			Help:      "Bids placed or replaced.",
		}),
		roundsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_finalized_total",
			Help:      "Bidding rounds finalized.",
		}),
		payoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_amount_total",
			Help:      "Sum of winner payouts written to the ledger.",
		}),
		groupTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_transitions_total",
			Help:      "Groups entering a status.",
		}, []string{"status"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	reg.MustRegister(
		m.contributions,
		m.contributionAmount,
		m.rejections,
		m.bids,
		m.roundsFinalized,
		m.payoutAmount,
		m.groupTransitions,
		m.rpcRequests,
		m.rpcDuration,
	)
	return m
}

func (m *Metrics) ContributionLogged(paymentMode string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.contributions.WithLabelValues(paymentMode).Inc()
	m.contributionAmount.Add(amount.InexactFloat64())
}

// Rejected counts an operation that failed with a domain error kind.
func (m *Metrics) Rejected(operation, kind string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) BidPlaced() {
	if m == nil {
		return
	}
	m.bids.Inc()
}

func (m *Metrics) RoundFinalized(payout decimal.Decimal) {
	if m == nil {
		return
	}
	m.roundsFinalized.Inc()
	m.payoutAmount.Add(payout.InexactFloat64())
}

func (m *Metrics) GroupTransition(status string) {
	if m == nil {
		return
	}
	m.groupTransitions.WithLabelValues(status).Inc()
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}
