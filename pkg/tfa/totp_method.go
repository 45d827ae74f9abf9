package tfa

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/totp"
)

// MethodTOTP identifies the authenticator-app method.
const MethodTOTP = "totp"

// TOTPMethod validates authenticator-app codes against the user's
// encrypted stored seed.
type TOTPMethod struct {
	generator *totp.Generator
	seeds     *totp.SeedStore
	now       func() time.Time
}

// TOTPOption configures a TOTPMethod.
type TOTPOption func(*TOTPMethod)

// WithTOTPClock overrides the time source used for code windows.
// Intended for tests; defaults to time.Now.
func WithTOTPClock(now func() time.Time) TOTPOption {
	return func(m *TOTPMethod) {
		if now != nil {
			m.now = now
		}
	}
}

// NewTOTPMethod wires the authenticator-app method.
func NewTOTPMethod(generator *totp.Generator, seeds *totp.SeedStore, opts ...TOTPOption) *TOTPMethod {
	m := &TOTPMethod{
		generator: generator,
		seeds:     seeds,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *TOTPMethod) ID() string { return MethodTOTP }

// Validate checks the submitted code against the current time window.
// A user without an enrolled seed gets an invalid result, not an error.
func (m *TOTPMethod) Validate(ctx context.Context, userID uuid.UUID, code string) (otpcode.Result, error) {
	secret, err := m.seeds.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, totp.ErrNoSeed) {
			return otpcode.ResultInvalid, nil
		}
		return otpcode.ResultInvalid, err
	}

	code = strings.Join(strings.Fields(code), "")
	if m.generator.ValidateCode(secret, code, m.now()) {
		return otpcode.ResultValid, nil
	}
	return otpcode.ResultInvalid, nil
}

// Ready reports whether the user has an enrolled seed.
func (m *TOTPMethod) Ready(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := m.seeds.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, totp.ErrNoSeed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
