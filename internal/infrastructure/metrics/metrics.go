package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Verification code metrics
	CodesIssued          *prometheus.CounterVec
	CodeVerifications    *prometheus.CounterVec
	CodeDeliveryFailures prometheus.Counter

	// User metrics
	UsersCreated prometheus.Counter

	// Ledger metrics
	TransactionsRecorded prometheus.Counter
	CreditsApplied       prometheus.Counter
	ReconciliationOps    *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Verification code metrics
		CodesIssued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savex_codes_issued_total",
				Help: "Total verification codes issued by flow",
			},
			[]string{"flow"},
		),
		CodeVerifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savex_code_verifications_total",
				Help: "Total verification attempts by result",
			},
			[]string{"result"},
		),
		CodeDeliveryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "savex_code_delivery_failures_total",
			Help: "Total verification codes that could not be emailed",
		}),

		// User metrics
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "savex_users_created_total",
			Help: "Total user accounts created",
		}),

		// Ledger metrics
		TransactionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "savex_transactions_recorded_total",
			Help: "Total spend transactions recorded",
		}),
		CreditsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "savex_credits_applied_total",
			Help: "Total balance credits applied",
		}),
		ReconciliationOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savex_reconciliation_ops_total",
				Help: "Total reconciliation operations by type",
			},
			[]string{"operation"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savex_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "savex_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savex_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
