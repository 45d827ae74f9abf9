package userdata

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReleasesRecordLocks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	const users = 50
	var wg sync.WaitGroup
	for range users {
		userID := uuid.New()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 3 {
				err := store.Update(ctx, userID, "tfa", "k", func(current []byte, _ bool) ([]byte, error) {
					return append(current, 'x'), nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	store.locksMu.Lock()
	defer store.locksMu.Unlock()
	require.Empty(t, store.locks, "lock entries must be dropped once no update holds them")
}
