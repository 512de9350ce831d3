package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/savexhq/savex/internal/adapter/http/dto"
	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/infrastructure/metrics"
	"github.com/savexhq/savex/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, email string) (*usecase.UserProfile, error)
}

// UserHandler handles user account HTTP requests.
type UserHandler struct {
	userUC  UserService
	metrics *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{userUC: userUC, metrics: m}
}

// Create registers a new account.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.userUC.CreateUser(r.Context(), usecase.CreateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		PIN:            req.PIN,
		InitialBalance: req.CurrentBalance,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.UsersCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.NewStatusResponse("User created successfully"))
}

// Get returns a user profile with its transaction history.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	profile, err := h.userUC.GetUser(r.Context(), email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserResponse(profile))
}
