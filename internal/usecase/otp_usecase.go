package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/savexhq/savex/internal/domain"
)

// OTPUseCase handles issuing and verifying one-time verification codes.
type OTPUseCase struct {
	users  UserChecker
	store  OTPStore
	mailer Mailer
	tokens TokenIssuer
	ttl    time.Duration
}

// NewOTPUseCase creates a new OTPUseCase. ttl bounds how long an issued code
// stays verifiable.
func NewOTPUseCase(users UserChecker, store OTPStore, mailer Mailer, tokens TokenIssuer, ttl time.Duration) *OTPUseCase {
	return &OTPUseCase{
		users:  users,
		store:  store,
		mailer: mailer,
		tokens: tokens,
		ttl:    ttl,
	}
}

// IssueLoginCode sends a verification code to an existing user.
func (uc *OTPUseCase) IssueLoginCode(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	exists, err := uc.users.Exists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrUserNotFound
	}

	return uc.issue(ctx, email)
}

// IssueSignupCode sends a verification code to an address that must not
// belong to an existing user yet.
func (uc *OTPUseCase) IssueSignupCode(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	exists, err := uc.users.Exists(ctx, email)
	if err != nil {
		return err
	}

	if exists {
		return domain.ErrUserExists
	}

	return uc.issue(ctx, email)
}

func (uc *OTPUseCase) issue(ctx context.Context, email string) error {
	code, err := domain.GenerateCode()
	if err != nil {
		return err
	}

	// Re-issuing overwrites the previous entry: at most one code per email.
	if err := uc.store.Put(ctx, email, code, uc.ttl); err != nil {
		return err
	}

	if err := uc.mailer.SendCode(ctx, email, code); err != nil {
		// A failure reported to the caller must not leave a verifiable code
		// behind.
		_ = uc.store.Delete(ctx, email)

		return fmt.Errorf("%w: %v", domain.ErrCodeDelivery, err)
	}

	return nil
}

// Verify consumes the stored code for email iff it equals candidate, and
// returns a session token on success. A consumed code can never be replayed;
// expiry is enforced by the store's TTL.
func (uc *OTPUseCase) Verify(ctx context.Context, email, candidate string) (string, error) {
	email = domain.NormalizeEmail(email)

	if len(candidate) != domain.CodeLength {
		return "", domain.ErrCodeInvalid
	}

	ok, err := uc.store.TakeIfMatch(ctx, email, candidate)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", domain.ErrCodeInvalid
	}

	return uc.tokens.Issue(email)
}
