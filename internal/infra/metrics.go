package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the promotion and subscription lifecycle.
type Metrics struct {
	PromotionsCreatedTotal  *prometheus.CounterVec
	PromotionsRejectedTotal *prometheus.CounterVec
	PromotionsExpiredTotal  *prometheus.CounterVec

	SubscriptionsExpiredTotal prometheus.Counter
	SweepDuration             *prometheus.HistogramVec
}

// NewMetrics registers on the given registerer so tests can use an isolated
// registry instead of the process-global one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PromotionsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promotions_created_total",
				Help: "Promotions created, by type and plan tier",
			},
			[]string{"promotion_type", "plan_type"},
		),
		PromotionsRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promotions_rejected_total",
				Help: "Promotion creations rejected by the slot ceiling",
			},
			[]string{"promotion_type", "plan_type"},
		),
		PromotionsExpiredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promotions_expired_total",
				Help: "Promotions deactivated, by type and source (sweep or delayed task)",
			},
			[]string{"promotion_type", "source"},
		),
		SubscriptionsExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "subscriptions_expired_total",
				Help: "Subscriptions transitioned active to expired",
			},
		),
		SweepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sweep_duration_seconds",
				Help:    "Duration of a single expiry sweep",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"sweep"},
		),
	}
}

func (m *Metrics) RecordPromotionCreated(promotionType, planType string) {
	m.PromotionsCreatedTotal.WithLabelValues(promotionType, planType).Inc()
}

func (m *Metrics) RecordPromotionRejected(promotionType, planType string) {
	m.PromotionsRejectedTotal.WithLabelValues(promotionType, planType).Inc()
}

func (m *Metrics) RecordPromotionExpired(promotionType, source string, count int64) {
	if count > 0 {
		m.PromotionsExpiredTotal.WithLabelValues(promotionType, source).Add(float64(count))
	}
}

func (m *Metrics) RecordSubscriptionsExpired(count int) {
	if count > 0 {
		m.SubscriptionsExpiredTotal.Add(float64(count))
	}
}

func (m *Metrics) RecordSweepDuration(sweep string, seconds float64) {
	m.SweepDuration.WithLabelValues(sweep).Observe(seconds)
}
