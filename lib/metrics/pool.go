package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type PoolMetrics struct {
	DepositsTotal    metrics.Counter
	WithdrawalsTotal metrics.Counter
	ClaimsFiled      metrics.Counter
	VotesTotal       metrics.Counter
	PayoutsTotal     metrics.Counter

	PoolTotal  metrics.Gauge
	OpenClaims metrics.Gauge
}

func (p *PoolMetrics) SetPoolTotal(total uint64) {
	p.PoolTotal.Set(float64(total))
}

func PromPoolMetrics() *PoolMetrics {
	return &PoolMetrics{
		DepositsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "deposits_total",
			Help:      "Total number of deposits.",
		}, []string{}),
		WithdrawalsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "withdrawals_total",
			Help:      "Total number of withdrawals.",
		}, []string{}),
		ClaimsFiled: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "claims_filed_total",
			Help:      "Total number of filed claims.",
		}, []string{}),
		VotesTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "votes_total",
			Help:      "Total number of recorded votes.",
		}, []string{"support"}),
		PayoutsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "payouts_total",
			Help:      "Total number of settled claims.",
		}, []string{}),
		PoolTotal: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "total",
			Help:      "Current pool total.",
		}, []string{}),
		OpenClaims: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: PoolSubsystem,
			Name:      "open_claims",
			Help:      "Number of open claims.",
		}, []string{}),
	}
}

func NopPoolMetrics() *PoolMetrics {
	return &PoolMetrics{
		DepositsTotal:    discard.NewCounter(),
		WithdrawalsTotal: discard.NewCounter(),
		ClaimsFiled:      discard.NewCounter(),
		VotesTotal:       discard.NewCounter(),
		PayoutsTotal:     discard.NewCounter(),
		PoolTotal:        discard.NewGauge(),
		OpenClaims:       discard.NewGauge(),
	}
}
