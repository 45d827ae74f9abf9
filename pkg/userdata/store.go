package userdata

import (
	"context"

	"github.com/google/uuid"
)

// UpdateFunc transforms the current value of a record inside an atomic
// read-modify-write cycle. found reports whether the record exists.
// Returning a nil next value deletes the record; returning an error
// aborts the update and propagates to the caller. Returning current
// unchanged leaves the record as-is.
type UpdateFunc func(current []byte, found bool) (next []byte, err error)

// Store persists opaque records keyed by (userID, namespace, key).
//
// Get returns ErrNotFound for absent records. Set is a full overwrite.
// Update serializes concurrent writers per record; implementations use a
// per-key lock, an optimistic transaction or row locking to guarantee it.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID, namespace, key string) ([]byte, error)
	Set(ctx context.Context, userID uuid.UUID, namespace, key string, value []byte) error
	Delete(ctx context.Context, userID uuid.UUID, namespace, key string) error
	Update(ctx context.Context, userID uuid.UUID, namespace, key string, fn UpdateFunc) error
}
