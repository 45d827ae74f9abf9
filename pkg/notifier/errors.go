package notifier

import "errors"

var (
	ErrFailedToSend    = errors.New("failed to send notification")
	ErrInvalidConfig   = errors.New("invalid notifier config")
	ErrInvalidMessage  = errors.New("invalid notification message")
	ErrInvalidCatalog  = errors.New("invalid message catalog")
	ErrMissingFallback = errors.New("message catalog has no fallback locale")
)
