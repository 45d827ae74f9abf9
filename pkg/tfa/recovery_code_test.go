package tfa_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/recovery"
	"github.com/dmitrymomot/tfakit/pkg/tfa"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

func newRecoveryCodeFixture(t *testing.T) (*tfa.RecoveryCodeMethod, *recovery.Bank) {
	t.Helper()

	bank := recovery.NewBank(userdata.NewMemoryStore(), newTestCodec(t), codec.DefaultProfile)
	return tfa.NewRecoveryCodeMethod(bank), bank
}

func TestRecoveryCodeMethod_ValidateConsumesCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	method, bank := newRecoveryCodeFixture(t)
	userID := uuid.New()

	codes, err := bank.PreviewBatch(ctx)
	require.NoError(t, err)
	require.NoError(t, bank.CommitBatch(ctx, userID, codes))

	result, err := method.Validate(ctx, userID, codes[0])
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)

	// Single use: the same code never matches twice.
	result, err = method.Validate(ctx, userID, codes[0])
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultInvalid, result)
}

func TestRecoveryCodeMethod_UnknownCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	method, bank := newRecoveryCodeFixture(t)
	userID := uuid.New()

	codes, err := bank.PreviewBatch(ctx)
	require.NoError(t, err)
	require.NoError(t, bank.CommitBatch(ctx, userID, codes))

	result, err := method.Validate(ctx, userID, "not-a-recovery-code")
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultInvalid, result)
}

func TestRecoveryCodeMethod_EmptyBank(t *testing.T) {
	t.Parallel()

	method, _ := newRecoveryCodeFixture(t)

	result, err := method.Validate(context.Background(), uuid.New(), "ABC123XYZ")
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultInvalid, result)
}

func TestRecoveryCodeMethod_AlwaysReady(t *testing.T) {
	t.Parallel()

	method, _ := newRecoveryCodeFixture(t)

	ready, err := method.Ready(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, tfa.MethodRecoveryCode, method.ID())
}
