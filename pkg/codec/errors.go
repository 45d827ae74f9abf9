package codec

import "errors"

var (
	ErrProfileNotFound     = errors.New("encryption profile not found")
	ErrInvalidKeyLength    = errors.New("invalid encryption key length")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrEncryptionFailed    = errors.New("failed to encrypt secret")
	ErrDecryptionFailed    = errors.New("failed to decrypt secret")
	ErrInvalidCiphertext   = errors.New("invalid ciphertext format")
	ErrCipherTooShort      = errors.New("cipher text too short")
	ErrKeyGenerationFailed = errors.New("failed to generate encryption key")
	ErrEncryptionKeyNotSet = errors.New("encryption key not set")
)
