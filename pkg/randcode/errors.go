package randcode

import "errors"

var (
	ErrInvalidLength    = errors.New("code length must be greater than 0")
	ErrInvalidCount     = errors.New("batch count must be greater than 0")
	ErrEmptyAlphabet    = errors.New("alphabet must not be empty")
	ErrGenerationFailed = errors.New("failed to generate random code")
)
