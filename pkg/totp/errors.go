package totp

import "errors"

var (
	ErrMissingIssuer      = errors.New("missing issuer")
	ErrMissingAccountName = errors.New("missing account name")
	ErrEnrollmentFailed   = errors.New("failed to enroll TOTP secret")
	ErrNoSeed             = errors.New("no TOTP seed enrolled")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrQRGenerationFailed = errors.New("failed to generate QR code")
)
