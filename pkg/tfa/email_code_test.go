package tfa_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/notifier"
	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/tfa"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

var groupedCode = regexp.MustCompile(`\d{3} \d{3} \d{3}`)

func newEmailCodeFixture(t *testing.T, n notifier.Notifier, opts ...tfa.EmailCodeOption) (*tfa.EmailCodeMethod, *otpcode.Service, *tfa.SettingsStore) {
	t.Helper()

	store := userdata.NewMemoryStore()
	codes := otpcode.New(store, newTestCodec(t), codec.DefaultProfile)
	settings := tfa.NewSettingsStore(store)

	return tfa.NewEmailCodeMethod(codes, settings, n, opts...), codes, settings
}

func TestEmailCodeMethod_BeginDeliversValidatableCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := &RecordingNotifier{}
	method, _, _ := newEmailCodeFixture(t, recorder)
	userID := uuid.New()

	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))

	messages := recorder.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "user@example.com", messages[0].To)
	assert.Equal(t, "en", messages[0].Locale)
	assert.Contains(t, messages[0].Body, "5 minutes")

	code := groupedCode.FindString(messages[0].Body)
	require.NotEmpty(t, code, "delivered body should carry the grouped code")

	// The displayed form carries grouping spaces; validation ignores them.
	result, err := method.Validate(ctx, userID, code)
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)
}

func TestEmailCodeMethod_CodeIsConsumedOnMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := &RecordingNotifier{}
	method, _, _ := newEmailCodeFixture(t, recorder)
	userID := uuid.New()

	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))
	code := groupedCode.FindString(recorder.Messages()[0].Body)
	require.NotEmpty(t, code)

	result, err := method.Validate(ctx, userID, code)
	require.NoError(t, err)
	require.Equal(t, otpcode.ResultValid, result)

	result, err = method.Validate(ctx, userID, code)
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultInvalid, result)
}

func TestEmailCodeMethod_ReissueReplacesPendingCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := &RecordingNotifier{}
	method, _, _ := newEmailCodeFixture(t, recorder)
	userID := uuid.New()

	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))
	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))

	messages := recorder.Messages()
	require.Len(t, messages, 2)
	first := groupedCode.FindString(messages[0].Body)
	second := groupedCode.FindString(messages[1].Body)
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)

	if first != second {
		result, err := method.Validate(ctx, userID, first)
		require.NoError(t, err)
		assert.Equal(t, otpcode.ResultInvalid, result, "replaced code should no longer validate")
	}

	result, err := method.Validate(ctx, userID, second)
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)
}

func TestEmailCodeMethod_DeliveryFailureKeepsIssuedCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := &RecordingNotifier{}
	recorder.FailWith(errors.New("smtp unavailable"))
	method, codes, _ := newEmailCodeFixture(t, recorder)
	userID := uuid.New()

	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))

	pending, err := codes.Peek(ctx, userID, tfa.PurposeLoginEmailCode)
	require.NoError(t, err)
	assert.Equal(t, userID, pending.UserID)
}

func TestEmailCodeMethod_LocalizedDelivery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mn := new(MockNotifier)
	mn.On("Send", mock.Anything, mock.MatchedBy(func(msg notifier.Message) bool {
		return msg.To == "user@example.de" && msg.Locale == "de" && groupedCode.MatchString(msg.Body)
	})).Return(nil).Once()

	method, _, _ := newEmailCodeFixture(t, mn)

	require.NoError(t, method.Begin(ctx, uuid.New(), "user@example.de", "de"))
	mn.AssertExpectations(t)
}

func TestEmailCodeMethod_CustomValidityAndLength(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	recorder := &RecordingNotifier{}
	method, _, _ := newEmailCodeFixture(t, recorder,
		tfa.WithValidityPeriod(time.Minute),
		tfa.WithCodeLength(6),
	)
	userID := uuid.New()

	require.NoError(t, method.Begin(ctx, userID, "user@example.com", "en"))

	messages := recorder.Messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Body, "1 minutes")

	code := regexp.MustCompile(`\d{3} \d{3}`).FindString(messages[0].Body)
	require.NotEmpty(t, code)

	result, err := method.Validate(ctx, userID, code)
	require.NoError(t, err)
	assert.Equal(t, otpcode.ResultValid, result)
}

func TestEmailCodeMethod_Ready(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	method, _, settings := newEmailCodeFixture(t, &RecordingNotifier{})
	userID := uuid.New()

	ready, err := method.Ready(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ready, "user without enabled methods is not ready")

	require.NoError(t, settings.Enable(ctx, userID, tfa.MethodEmailCode))

	ready, err = method.Ready(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestEmailCodeMethod_ID(t *testing.T) {
	t.Parallel()

	method, _, _ := newEmailCodeFixture(t, &RecordingNotifier{})
	assert.Equal(t, tfa.MethodEmailCode, method.ID())
}
