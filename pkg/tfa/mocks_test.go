package tfa_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/notifier"
)

func newTestCodec(t *testing.T) *codec.Codec {
	t.Helper()

	key, err := codec.GenerateKey()
	require.NoError(t, err)

	return codec.New(codec.StaticResolver{codec.DefaultProfile: key})
}

// MockNotifier is a mock implementation of notifier.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg notifier.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// RecordingNotifier captures sent messages for assertions.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []notifier.Message
	err      error
}

func (r *RecordingNotifier) Send(_ context.Context, msg notifier.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return r.err
}

func (r *RecordingNotifier) Messages() []notifier.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *RecordingNotifier) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
