package totp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

const (
	// Namespace is the userdata namespace TOTP seeds live in.
	Namespace = "tfa"
	// SeedKey is the userdata key the encrypted seed is stored under.
	SeedKey = "totp_seed"
)

// SeedStore persists per-user TOTP seeds encrypted at rest.
type SeedStore struct {
	store   userdata.Store
	codec   *codec.Codec
	profile string
}

// NewSeedStore creates a SeedStore encrypting seeds under the named profile.
func NewSeedStore(store userdata.Store, c *codec.Codec, profile string) *SeedStore {
	return &SeedStore{store: store, codec: c, profile: profile}
}

// Save encrypts and stores the user's seed, replacing any prior one.
func (s *SeedStore) Save(ctx context.Context, userID uuid.UUID, secret string) error {
	encrypted, err := s.codec.Encrypt(secret, s.profile)
	if err != nil {
		return fmt.Errorf("failed to encrypt TOTP seed: %w", err)
	}
	if err := s.store.Set(ctx, userID, Namespace, SeedKey, []byte(encrypted)); err != nil {
		return fmt.Errorf("failed to store TOTP seed: %w", err)
	}
	return nil
}

// Load fetches and decrypts the user's seed. Returns ErrNoSeed when the
// user has not enrolled.
func (s *SeedStore) Load(ctx context.Context, userID uuid.UUID) (string, error) {
	payload, err := s.store.Get(ctx, userID, Namespace, SeedKey)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return "", ErrNoSeed
		}
		return "", fmt.Errorf("failed to fetch TOTP seed: %w", err)
	}

	secret, err := s.codec.Decrypt(string(payload), s.profile)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt TOTP seed: %w", err)
	}
	return secret, nil
}

// Delete removes the user's seed, disabling the method.
func (s *SeedStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, userID, Namespace, SeedKey); err != nil {
		return fmt.Errorf("failed to delete TOTP seed: %w", err)
	}
	return nil
}
