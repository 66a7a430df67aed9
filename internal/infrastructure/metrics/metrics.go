package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger operation metrics
	DepositsCreated    prometheus.Counter
	WithdrawalsCreated prometheus.Counter
	OperationDuration  prometheus.Histogram
	OperationAmount    prometheus.Histogram
	OperationErrors    *prometheus.CounterVec

	// Account metrics
	AccountsCreated     prometheus.Counter
	AccountsDeactivated prometheus.Counter
	AccountsReactivated prometheus.Counter
	NumberCollisions    prometheus.Counter

	// Notification metrics
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_deposits_total",
			Help: "Total number of deposits performed",
		}),
		WithdrawalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_withdrawals_total",
			Help: "Total number of withdrawals performed",
		}),
		OperationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankledger_operation_duration_seconds",
			Help:    "Duration of ledger operations",
			Buckets: prometheus.DefBuckets,
		}),
		OperationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankledger_operation_amount",
			Help:    "Amounts of ledger operations",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankledger_operation_errors_total",
				Help: "Total number of ledger operation errors by type",
			},
			[]string{"error_type"},
		),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_deactivated_total",
			Help: "Total number of accounts deactivated",
		}),
		AccountsReactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_accounts_reactivated_total",
			Help: "Total number of accounts reactivated",
		}),
		NumberCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_account_number_collisions_total",
			Help: "Total number of account number generation collisions",
		}),

		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_notifications_sent_total",
			Help: "Total number of notifications handed to the notifier",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankledger_notifications_failed_total",
			Help: "Total number of notification delivery failures",
		}),
	}
}
