package userdata

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store backed by a map. It is safe for
// concurrent use and serializes Update calls per record, which makes it
// suitable for tests and single-node deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[recordKey][]byte

	locksMu sync.Mutex
	locks   map[recordKey]*lockEntry
}

// lockEntry is a per-record mutex with a holder count so the entry can
// be dropped from the map once the last Update releases it.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type recordKey struct {
	userID    uuid.UUID
	namespace string
	key       string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[recordKey][]byte),
		locks: make(map[recordKey]*lockEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID uuid.UUID, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[recordKey{userID, namespace, key}]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, userID uuid.UUID, namespace, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[recordKey{userID, namespace, key}] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID uuid.UUID, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, recordKey{userID, namespace, key})
	return nil
}

// Update runs fn under a per-record mutex so concurrent read-modify-write
// cycles for the same record never interleave. Different records proceed
// independently.
func (s *MemoryStore) Update(ctx context.Context, userID uuid.UUID, namespace, key string, fn UpdateFunc) error {
	rk := recordKey{userID, namespace, key}

	entry := s.acquireRecordLock(rk)
	defer s.releaseRecordLock(rk, entry)

	current, err := s.Get(ctx, userID, namespace, key)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	if next == nil {
		return s.Delete(ctx, userID, namespace, key)
	}
	return s.Set(ctx, userID, namespace, key, next)
}

func (s *MemoryStore) acquireRecordLock(rk recordKey) *lockEntry {
	s.locksMu.Lock()
	entry, ok := s.locks[rk]
	if !ok {
		entry = &lockEntry{}
		s.locks[rk] = entry
	}
	entry.refs++
	s.locksMu.Unlock()

	entry.mu.Lock()
	return entry
}

func (s *MemoryStore) releaseRecordLock(rk recordKey, entry *lockEntry) {
	entry.mu.Unlock()

	s.locksMu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(s.locks, rk)
	}
	s.locksMu.Unlock()
}
