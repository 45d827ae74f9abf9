package tfa_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/tfa"
	"github.com/dmitrymomot/tfakit/pkg/totp"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

func newTOTPFixture(t *testing.T, at time.Time) (*tfa.TOTPMethod, *totp.Generator, *totp.SeedStore) {
	t.Helper()

	generator := totp.NewGenerator("tfakit-test")
	seeds := totp.NewSeedStore(userdata.NewMemoryStore(), newTestCodec(t), codec.DefaultProfile)
	method := tfa.NewTOTPMethod(generator, seeds, tfa.WithTOTPClock(func() time.Time { return at }))

	return method, generator, seeds
}

func TestTOTPMethod_ValidateEnrolledUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	at := time.Unix(1700000000, 0)
	method, generator, seeds := newTOTPFixture(t, at)
	userID := uuid.New()

	secret, _, err := generator.Enroll("user@example.com")
	require.NoError(t, err)
	require.NoError(t, seeds.Save(ctx, userID, secret))

	code, err := generator.GenerateCode(secret, at)
	require.NoError(t, err)

	result, err := method.Validate(ctx, userID, code)
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)
}

func TestTOTPMethod_IgnoresWhitespace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	at := time.Unix(1700000000, 0)
	method, generator, seeds := newTOTPFixture(t, at)
	userID := uuid.New()

	secret, _, err := generator.Enroll("user@example.com")
	require.NoError(t, err)
	require.NoError(t, seeds.Save(ctx, userID, secret))

	code, err := generator.GenerateCode(secret, at)
	require.NoError(t, err)

	result, err := method.Validate(ctx, userID, code[:3]+" "+code[3:])
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)
}

func TestTOTPMethod_WrongCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	at := time.Unix(1700000000, 0)
	method, generator, seeds := newTOTPFixture(t, at)
	userID := uuid.New()

	secret, _, err := generator.Enroll("user@example.com")
	require.NoError(t, err)
	require.NoError(t, seeds.Save(ctx, userID, secret))

	result, err := method.Validate(ctx, userID, "000000")
	require.NoError(t, err)
	// Guard against the 10^-6 chance the fixed guess is the real code.
	current, err := generator.GenerateCode(secret, at)
	require.NoError(t, err)
	if current != "000000" {
		assert.Equal(t, otpcode.ResultInvalid, result)
	}
}

func TestTOTPMethod_NoSeedIsInvalidNotError(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 0)
	method, _, _ := newTOTPFixture(t, at)

	result, err := method.Validate(context.Background(), uuid.New(), "123456")
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultInvalid, result)
}

func TestTOTPMethod_Ready(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	at := time.Unix(1700000000, 0)
	method, generator, seeds := newTOTPFixture(t, at)
	userID := uuid.New()

	ready, err := method.Ready(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ready, "user without an enrolled seed is not ready")

	secret, _, err := generator.Enroll("user@example.com")
	require.NoError(t, err)
	require.NoError(t, seeds.Save(ctx, userID, secret))

	ready, err = method.Ready(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, tfa.MethodTOTP, method.ID())
}
