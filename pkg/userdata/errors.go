package userdata

import "errors"

var (
	ErrNotFound         = errors.New("user data record not found")
	ErrStoreUnreachable = errors.New("user data store unreachable")
	ErrUpdateConflict   = errors.New("user data update conflict, retries exhausted")
)
