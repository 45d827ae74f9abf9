package tfa

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/recovery"
)

// MethodRecoveryCode identifies the single-use recovery-code method.
const MethodRecoveryCode = "recovery_code"

// RecoveryCodeMethod validates submissions against the user's recovery
// code bank. Recovery codes never expire, so only valid/invalid results
// are produced.
type RecoveryCodeMethod struct {
	bank *recovery.Bank
}

// NewRecoveryCodeMethod wires the recovery-code method over a bank.
func NewRecoveryCodeMethod(bank *recovery.Bank) *RecoveryCodeMethod {
	return &RecoveryCodeMethod{bank: bank}
}

func (m *RecoveryCodeMethod) ID() string { return MethodRecoveryCode }

// Validate consumes the submitted code if it matches an unused entry.
func (m *RecoveryCodeMethod) Validate(ctx context.Context, userID uuid.UUID, code string) (otpcode.Result, error) {
	ok, err := m.bank.Consume(ctx, userID, code)
	if err != nil {
		return otpcode.ResultInvalid, err
	}
	if ok {
		return otpcode.ResultValid, nil
	}
	return otpcode.ResultInvalid, nil
}

// Ready always holds: the setup flow can run regardless of prior state,
// and validation of an empty bank simply never matches.
func (m *RecoveryCodeMethod) Ready(_ context.Context, _ uuid.UUID) (bool, error) {
	return true, nil
}
