// Package metrics exposes settlement metrics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// SettlementMetrics implements adapter.SettlementObserver.
type SettlementMetrics struct {
	registry    *prometheus.Registry
	settlements *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	amount      *prometheus.CounterVec
	emails      *prometheus.CounterVec
}

// NewSettlementMetrics registers the settlement collectors on a fresh registry.
func NewSettlementMetrics() *SettlementMetrics {
	m := &SettlementMetrics{
		registry: prometheus.NewRegistry(),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_split",
			Name:      "settlements_total",
			Help:      "Committed settlements by policy and overall result.",
		}, []string{"policy", "result"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_split",
			Name:      "settlement_user_outcomes_total",
			Help:      "Per-user settlement outcomes by payment method.",
		}, []string{"policy", "outcome"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_split",
			Name:      "settled_amount_total",
			Help:      "Settled amount in minor currency units by payment method.",
		}, []string{"method"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receipt_split",
			Name:      "emails_total",
			Help:      "Notification delivery attempts by template and resulting job status.",
		}, []string{"template", "status"}),
	}

	m.registry.MustRegister(
		m.settlements,
		m.outcomes,
		m.amount,
		m.emails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSettlement records one committed settlement.
func (m *SettlementMetrics) ObserveSettlement(s *entity.Settlement) {
	policy := string(s.Policy)

	result := "success"
	if !s.Succeeded() {
		result = "partial"
		if !anySucceeded(s) {
			result = "failed"
		}
	}
	m.settlements.WithLabelValues(policy, result).Inc()

	for _, e := range s.Entries {
		switch {
		case !e.Result.Success:
			m.outcomes.WithLabelValues(policy, "failed").Inc()
		case e.Result.PaidByDeposit():
			m.outcomes.WithLabelValues(policy, "deposit").Inc()
		default:
			m.outcomes.WithLabelValues(policy, "cash").Inc()
		}

		if deposit, _ := e.Result.DepositUsed.Float64(); deposit > 0 {
			m.amount.WithLabelValues("deposit").Add(deposit)
		}
		if cash, _ := e.Result.CashPaid.Float64(); cash > 0 {
			m.amount.WithLabelValues("cash").Add(cash)
		}
	}
}

// ObserveEmail records the outcome of one delivery attempt. A pending status
// means the job was rescheduled.
func (m *SettlementMetrics) ObserveEmail(template entity.EmailTemplateType, status entity.EmailStatus) {
	m.emails.WithLabelValues(string(template), string(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *SettlementMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *SettlementMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func anySucceeded(s *entity.Settlement) bool {
	for _, e := range s.Entries {
		if e.Result.Success {
			return true
		}
	}
	return false
}
