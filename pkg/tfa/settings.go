package tfa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

const (
	// Namespace is the userdata namespace TFA records live in.
	Namespace = "tfa"
	// settingsKey is the userdata key user settings are stored under.
	settingsKey = "user_settings"
)

// UserSettings records which validation methods a user has enabled.
// The validation flow reads it to gate method readiness; only the
// setup/admin flow writes it.
type UserSettings struct {
	UserID         uuid.UUID `json:"user_id"`
	EnabledMethods []string  `json:"enabled_methods"`
}

// Enabled reports whether the given method is in the enabled set.
func (s UserSettings) Enabled(methodID string) bool {
	return slices.Contains(s.EnabledMethods, methodID)
}

// SettingsStore reads and writes per-user TFA settings.
type SettingsStore struct {
	store userdata.Store
}

// NewSettingsStore creates a SettingsStore over the shared userdata store.
func NewSettingsStore(store userdata.Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// Load fetches the user's settings. A user without stored settings gets
// an empty set, not an error.
func (s *SettingsStore) Load(ctx context.Context, userID uuid.UUID) (UserSettings, error) {
	payload, err := s.store.Get(ctx, userID, Namespace, settingsKey)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return UserSettings{UserID: userID}, nil
		}
		return UserSettings{}, fmt.Errorf("failed to fetch user settings: %w", err)
	}

	var settings UserSettings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return UserSettings{}, fmt.Errorf("failed to decode user settings: %w", err)
	}
	settings.UserID = userID
	return settings, nil
}

// Enable records the method as enabled for the user. Enabling an
// already enabled method is a no-op.
func (s *SettingsStore) Enable(ctx context.Context, userID uuid.UUID, methodID string) error {
	if methodID == "" {
		return ErrEmptyMethodID
	}
	return s.update(ctx, userID, func(settings *UserSettings) {
		if !settings.Enabled(methodID) {
			settings.EnabledMethods = append(settings.EnabledMethods, methodID)
		}
	})
}

// Disable removes the method from the user's enabled set.
func (s *SettingsStore) Disable(ctx context.Context, userID uuid.UUID, methodID string) error {
	if methodID == "" {
		return ErrEmptyMethodID
	}
	return s.update(ctx, userID, func(settings *UserSettings) {
		settings.EnabledMethods = slices.DeleteFunc(settings.EnabledMethods, func(id string) bool {
			return id == methodID
		})
	})
}

func (s *SettingsStore) update(ctx context.Context, userID uuid.UUID, mutate func(*UserSettings)) error {
	err := s.store.Update(ctx, userID, Namespace, settingsKey, func(current []byte, found bool) ([]byte, error) {
		settings := UserSettings{UserID: userID}
		if found {
			if err := json.Unmarshal(current, &settings); err != nil {
				return nil, fmt.Errorf("failed to decode user settings: %w", err)
			}
			settings.UserID = userID
		}

		mutate(&settings)

		next, err := json.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("failed to encode user settings: %w", err)
		}
		return next, nil
	})
	if err != nil {
		return fmt.Errorf("failed to update user settings: %w", err)
	}
	return nil
}
