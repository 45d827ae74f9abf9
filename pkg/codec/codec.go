package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// Codec encrypts and decrypts short secrets under named encryption profiles.
// The zero value is not usable; construct with New.
type Codec struct {
	resolver ProfileResolver
}

// New creates a Codec bound to the given profile resolver.
func New(resolver ProfileResolver) *Codec {
	return &Codec{resolver: resolver}
}

// Encrypt encrypts plaintext under the named profile using AES-256-GCM.
// Returns the ciphertext as a base64-encoded string.
func (c *Codec) Encrypt(plaintext, profile string) (string, error) {
	p, err := c.resolver.Resolve(profile)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	key, err := deriveKey(p)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	cipherText := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

// Decrypt decrypts a base64-encoded ciphertext produced by Encrypt under
// the same profile. Truncated or corrupted input fails with
// ErrDecryptionFailed; callers in validation paths must treat that as a
// distinct failure, not as a code mismatch.
func (c *Codec) Decrypt(ciphertext, profile string) (string, error) {
	p, err := c.resolver.Resolve(profile)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	key, err := deriveKey(p)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	cipherText, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.Join(ErrDecryptionFailed, ErrCipherTooShort)
	}
	nonce, cipherText := cipherText[:nonceSize], cipherText[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
