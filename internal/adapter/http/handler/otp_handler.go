package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/savexhq/savex/internal/adapter/http/dto"
	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/infrastructure/metrics"
)

// OTPService defines the behavior needed by OTPHandler.
type OTPService interface {
	IssueLoginCode(ctx context.Context, email string) error
	IssueSignupCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, candidate string) (string, error)
}

// OTPHandler handles verification-code HTTP requests.
type OTPHandler struct {
	otpUC   OTPService
	metrics *metrics.Metrics
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(otpUC OTPService, m *metrics.Metrics) *OTPHandler {
	return &OTPHandler{otpUC: otpUC, metrics: m}
}

// SendLoginCode emails a verification code to an existing account.
func (h *OTPHandler) SendLoginCode(w http.ResponseWriter, r *http.Request) {
	var req dto.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.otpUC.IssueLoginCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrCodeDelivery) {
			h.metrics.CodeDeliveryFailures.Inc()
		}
		writeDomainError(w, err)

		return
	}

	h.metrics.CodesIssued.WithLabelValues("login").Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("OTP sent successfully"))
}

// SendSignupCode emails a verification code to a not-yet-registered address.
func (h *OTPHandler) SendSignupCode(w http.ResponseWriter, r *http.Request) {
	var req dto.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.otpUC.IssueSignupCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrCodeDelivery) {
			h.metrics.CodeDeliveryFailures.Inc()
		}
		writeDomainError(w, err)

		return
	}

	h.metrics.CodesIssued.WithLabelValues("signup").Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("OTP sent successfully"))
}

// Verify checks a submitted code and returns a session token on success.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.otpUC.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.metrics.CodeVerifications.WithLabelValues("failure").Inc()
		writeDomainError(w, err)

		return
	}

	h.metrics.CodeVerifications.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, dto.NewTokenResponse("OTP verified", token))
}
