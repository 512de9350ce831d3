package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/savexhq/savex/internal/adapter/http/dto"
	"github.com/savexhq/savex/internal/domain"
)

type otpServiceStub struct {
	issueLoginFn  func(ctx context.Context, email string) error
	issueSignupFn func(ctx context.Context, email string) error
	verifyFn      func(ctx context.Context, email, candidate string) (string, error)
}

func (s *otpServiceStub) IssueLoginCode(ctx context.Context, email string) error {
	return s.issueLoginFn(ctx, email)
}

func (s *otpServiceStub) IssueSignupCode(ctx context.Context, email string) error {
	return s.issueSignupFn(ctx, email)
}

func (s *otpServiceStub) Verify(ctx context.Context, email, candidate string) (string, error) {
	return s.verifyFn(ctx, email, candidate)
}

func TestOTPHandler_SendLoginCode_Success(t *testing.T) {
	var captured string
	handler := NewOTPHandler(&otpServiceStub{
		issueLoginFn: func(ctx context.Context, email string) error {
			captured = email
			return nil
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.SendCodeRequest{Email: "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/send_login_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendLoginCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured != "a@x.com" {
		t.Fatalf("expected email to reach the service, got %q", captured)
	}

	var resp dto.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected success status, got %q", resp.Status)
	}
}

func TestOTPHandler_SendLoginCode_UnknownUser(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		issueLoginFn: func(ctx context.Context, email string) error {
			return domain.ErrUserNotFound
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.SendCodeRequest{Email: "ghost@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/send_login_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendLoginCode(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Fatalf("expected error status, got %q", resp.Status)
	}
}

func TestOTPHandler_SendSignupCode_ExistingUser(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		issueSignupFn: func(ctx context.Context, email string) error {
			return domain.ErrUserExists
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.SendCodeRequest{Email: "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/send_signup_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendSignupCode(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOTPHandler_SendSignupCode_DeliveryFailure(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		issueSignupFn: func(ctx context.Context, email string) error {
			return domain.ErrCodeDelivery
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.SendCodeRequest{Email: "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/send_signup_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SendSignupCode(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestOTPHandler_Verify_Success(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		verifyFn: func(ctx context.Context, email, candidate string) (string, error) {
			if email != "a@x.com" || candidate != "123456" {
				t.Fatalf("unexpected verify args: %s %s", email, candidate)
			}
			return "session-token", nil
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.VerifyCodeRequest{Email: "a@x.com", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/verify_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "session-token" {
		t.Fatalf("expected session token in response, got %+v", resp)
	}
}

func TestOTPHandler_Verify_WrongCode(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		verifyFn: func(ctx context.Context, email, candidate string) (string, error) {
			return "", domain.ErrCodeInvalid
		},
	}, newTestMetrics(t))

	body, _ := json.Marshal(dto.VerifyCodeRequest{Email: "a@x.com", OTP: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/verify_otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Verify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOTPHandler_InvalidJSON(t *testing.T) {
	handler := NewOTPHandler(&otpServiceStub{
		issueLoginFn: func(ctx context.Context, email string) error {
			t.Fatal("IssueLoginCode should not be called for invalid payload")
			return nil
		},
	}, newTestMetrics(t))

	req := httptest.NewRequest(http.MethodPost, "/send_login_otp", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.SendLoginCode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
