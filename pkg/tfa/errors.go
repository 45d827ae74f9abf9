package tfa

import "errors"

var (
	ErrUnknownMethod           = errors.New("unknown validation method")
	ErrMethodAlreadyRegistered = errors.New("validation method already registered")
	ErrEmptyMethodID           = errors.New("validation method id must not be empty")
	ErrInvalidValidityPeriod   = errors.New("code validity period must be 1-5 minutes in whole minutes")
)
