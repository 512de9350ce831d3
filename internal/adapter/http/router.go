package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savexhq/savex/internal/adapter/http/handler"
	"github.com/savexhq/savex/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	OTPHandler    *handler.OTPHandler
	UserHandler   *handler.UserHandler
	LedgerHandler *handler.LedgerHandler
	HealthHandler *handler.HealthHandler

	Logging *middleware.LoggingMiddleware
	Metrics *middleware.MetricsMiddleware

	// OTPRateLimiter throttles the code-issuing endpoints per IP. The
	// verify endpoint stays unthrottled so a user with a fresh code is
	// never locked out of consuming it.
	OTPRateLimiter *middleware.RateLimiter

	// SessionAuth, when set, guards the user and ledger endpoints with a
	// session token check. The code endpoints stay open so a session can
	// be established in the first place.
	SessionAuth func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Verification codes
	r.Group(func(r chi.Router) {
		if cfg.OTPRateLimiter != nil {
			r.Use(cfg.OTPRateLimiter.Limit)
		}

		r.Post("/send_login_otp", cfg.OTPHandler.SendLoginCode)
		r.Post("/send_signup_otp", cfg.OTPHandler.SendSignupCode)
	})
	r.Post("/verify_otp", cfg.OTPHandler.Verify)

	// Users and ledger
	r.Group(func(r chi.Router) {
		if cfg.SessionAuth != nil {
			r.Use(cfg.SessionAuth)
		}

		r.Post("/create_user", cfg.UserHandler.Create)
		r.Get("/get_user", cfg.UserHandler.Get)

		r.Post("/add_transaction", cfg.LedgerHandler.AddTransaction)
		r.Post("/add_money", cfg.LedgerHandler.AddMoney)
		r.Post("/update_balance", cfg.LedgerHandler.UpdateBalance)
		r.Post("/set_budget", cfg.LedgerHandler.SetBudget)
		r.Post("/clear_history", cfg.LedgerHandler.ClearHistory)
	})

	return r
}
