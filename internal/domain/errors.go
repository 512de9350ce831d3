package domain

import "errors"

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("account already exists")

	// Verification errors
	ErrCodeInvalid  = errors.New("invalid or expired verification code")
	ErrCodeDelivery = errors.New("could not deliver verification code")

	// Ledger errors
	ErrInvalidAmount = errors.New("amount must be positive")

	// Session errors
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
)
