package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/savexhq/savex/internal/infrastructure/auth"
)

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := SessionAuth(jwtManager)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a header, got %d", rec.Code)
	}
}

func TestSessionAuthRejectsMalformedHeader(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := SessionAuth(jwtManager)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a non-bearer header, got %d", rec.Code)
	}
}

func TestSessionAuthRejectsInvalidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := SessionAuth(jwtManager)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a garbage token, got %d", rec.Code)
	}
}

func TestSessionAuthPassesValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	token, err := jwtManager.Issue("a@x.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	var seenEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail, _ = GetEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionAuth(jwtManager)(next)

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d", rec.Code)
	}
	if seenEmail != "a@x.com" {
		t.Fatalf("expected the token's email in context, got %q", seenEmail)
	}
}
