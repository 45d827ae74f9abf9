package tfa_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/tfa"
)

// stubMethod is a minimal Method with a fixed identifier and readiness.
type stubMethod struct {
	id    string
	ready bool
}

func (m stubMethod) ID() string { return m.id }

func (m stubMethod) Validate(_ context.Context, _ uuid.UUID, _ string) (otpcode.Result, error) {
	return otpcode.ResultInvalid, nil
}

func (m stubMethod) Ready(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.ready, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	require.NoError(t, registry.Register(stubMethod{id: "email_code"}))

	m, err := registry.Get("email_code")
	require.NoError(t, err)
	assert.Equal(t, "email_code", m.ID())
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	require.NoError(t, registry.Register(stubMethod{id: "totp"}))

	err := registry.Register(stubMethod{id: "totp"})
	require.ErrorIs(t, err, tfa.ErrMethodAlreadyRegistered)
}

func TestRegistry_EmptyMethodID(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	require.ErrorIs(t, registry.Register(stubMethod{id: ""}), tfa.ErrEmptyMethodID)
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	_, err := registry.Get("nope")
	require.ErrorIs(t, err, tfa.ErrUnknownMethod)
}

func TestRegistry_IDsPreserveOrder(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	require.NoError(t, registry.Register(stubMethod{id: "totp"}))
	require.NoError(t, registry.Register(stubMethod{id: "email_code"}))
	require.NoError(t, registry.Register(stubMethod{id: "recovery_code"}))

	assert.Equal(t, []string{"totp", "email_code", "recovery_code"}, registry.IDs())
}

func TestRegistry_ReadyMethods(t *testing.T) {
	t.Parallel()

	registry := tfa.NewRegistry()
	require.NoError(t, registry.Register(stubMethod{id: "totp", ready: true}))
	require.NoError(t, registry.Register(stubMethod{id: "email_code", ready: false}))
	require.NoError(t, registry.Register(stubMethod{id: "recovery_code", ready: true}))

	ready, err := registry.ReadyMethods(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"totp", "recovery_code"}, ready)
}
