package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/adapter/http/dto"
	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/infrastructure/metrics"
	"github.com/savexhq/savex/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*domain.Transaction, error)
	AddCredit(ctx context.Context, email string, amount decimal.Decimal) error
	OverwriteBalance(ctx context.Context, email string, balance decimal.Decimal) error
	SetBudgetReminder(ctx context.Context, email string, amount decimal.Decimal) error
	ClearHistory(ctx context.Context, email string) error
}

// LedgerHandler handles balance and transaction HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// AddTransaction records a spend and debits the balance atomically.
func (h *LedgerHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.ledgerUC.RecordTransaction(r.Context(), usecase.RecordTransactionInput{
		Email:       req.Email,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		IsManual:    req.IsManual,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.TransactionsRecorded.Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("Transaction added successfully"))
}

// AddMoney credits the balance without a log entry.
func (h *LedgerHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledgerUC.AddCredit(r.Context(), req.Email, req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.CreditsApplied.Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("Money added successfully"))
}

// UpdateBalance overwrites the balance with a reconciled value.
func (h *LedgerHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledgerUC.OverwriteBalance(r.Context(), req.Email, req.NewBalance); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.ReconciliationOps.WithLabelValues("update_balance").Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("Balance updated successfully"))
}

// SetBudget sets the monthly budget reminder threshold.
func (h *LedgerHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledgerUC.SetBudgetReminder(r.Context(), req.Email, req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewStatusResponse("Budget reminder set successfully"))
}

// ClearHistory deletes the transaction log, leaving the balance untouched.
func (h *LedgerHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	var req dto.ClearHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledgerUC.ClearHistory(r.Context(), req.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.ReconciliationOps.WithLabelValues("clear_history").Inc()
	writeJSON(w, http.StatusOK, dto.NewStatusResponse("Transaction history cleared"))
}
