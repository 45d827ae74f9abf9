package otpcode

import "errors"

var (
	ErrNoPendingCode  = errors.New("no pending code")
	ErrInvalidPurpose = errors.New("purpose must not be empty")
	ErrInvalidTTL     = errors.New("ttl must be greater than zero")
	ErrEmptyCode      = errors.New("code must not be empty")
)
