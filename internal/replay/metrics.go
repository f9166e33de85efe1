package replay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/punchamoorthee/payflow/internal/ledger"
)

var (
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payflow_actions_total",
		Help: "Transaction-log actions processed, labeled by type and result",
	}, []string{"type", "result"})

	malformedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payflow_malformed_records_total",
		Help: "Log records rejected before reaching the ledger",
	})
)

func countAction(a ledger.Action, err error) {
	result := "applied"
	if err != nil {
		result = "rejected"
	}
	actionsTotal.WithLabelValues(actionType(a), result).Inc()
}

func actionType(a ledger.Action) string {
	switch a.(type) {
	case ledger.Deposit:
		return "deposit"
	case ledger.Withdrawal:
		return "withdrawal"
	case ledger.Dispute:
		return "dispute"
	case ledger.Resolve:
		return "resolve"
	case ledger.Chargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}
