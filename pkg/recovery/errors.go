package recovery

import "errors"

var (
	ErrEmptyBatch     = errors.New("recovery code batch must not be empty")
	ErrDuplicateCodes = errors.New("recovery code batch contains duplicates")
)
