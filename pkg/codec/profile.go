package codec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key size for AES-256 (256 bits / 8 = 32 bytes).
	KeySize = 32

	// DefaultProfile is the profile name used when no explicit profile is configured.
	DefaultProfile = "default"

	// saltInfo provides HKDF domain separation between tfakit and other
	// consumers of the same master key material.
	saltInfo = "tfakit-codec-v1"
)

// Profile is a named encryption configuration resolved at encrypt/decrypt time.
type Profile struct {
	Name string
	Key  []byte // 32-byte master key
}

// ProfileResolver maps a profile name to cipher parameters.
// Implementations must return ErrProfileNotFound for unknown names.
type ProfileResolver interface {
	Resolve(name string) (Profile, error)
}

// StaticResolver resolves profiles from an in-memory map of name to master key.
type StaticResolver map[string][]byte

func (r StaticResolver) Resolve(name string) (Profile, error) {
	key, ok := r[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	if len(key) != KeySize {
		return Profile{}, errors.Join(ErrProfileNotFound, ErrInvalidKeyLength)
	}
	return Profile{Name: name, Key: key}, nil
}

// deriveKey derives the effective AES-256 key for a profile using HKDF-SHA256.
// The profile name acts as salt so profiles sharing a master key stay isolated.
func deriveKey(p Profile) ([]byte, error) {
	if len(p.Key) != KeySize {
		return nil, errors.Join(ErrKeyDerivationFailed, ErrInvalidKeyLength)
	}

	hkdfReader := hkdf.New(sha256.New, p.Key, []byte(p.Name), []byte(saltInfo))

	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derived); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return derived, nil
}

// GenerateKey creates a new random 32-byte master key suitable for AES-256.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyGenerationFailed, err)
	}
	return key, nil
}

// GenerateEncodedKey creates a new random master key as a base64-encoded string.
// This function is useful for generating a key and storing it in the configuration.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
