package otpcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/logger"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

// Service issues and validates pending one-time codes.
type Service struct {
	store     userdata.Store
	codec     *codec.Codec
	profile   string
	namespace string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source used for expiry math. Intended for
// tests; defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNamespace overrides the userdata namespace pending codes live in.
func WithNamespace(namespace string) Option {
	return func(s *Service) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// New creates a Service encrypting codes under the named profile.
func New(store userdata.Store, c *codec.Codec, profile string, opts ...Option) *Service {
	s := &Service{
		store:     store,
		codec:     c,
		profile:   profile,
		namespace: Namespace,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue encrypts plaintext and stores it as the pending code for
// (userID, purpose) with expiry now+ttl. Any prior pending code for the
// pair is discarded unconditionally; re-issuing is always allowed.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, purpose, plaintext string, ttl time.Duration) error {
	if purpose == "" {
		return ErrInvalidPurpose
	}
	if plaintext == "" {
		return ErrEmptyCode
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	encrypted, err := s.codec.Encrypt(plaintext, s.profile)
	if err != nil {
		return fmt.Errorf("failed to encrypt pending code: %w", err)
	}

	record := PendingCode{
		UserID:         userID,
		Purpose:        purpose,
		EncryptedValue: encrypted,
		ExpiresAt:      s.now().Add(ttl).Unix(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode pending code: %w", err)
	}

	if err := s.store.Set(ctx, userID, s.namespace, purpose, payload); err != nil {
		return fmt.Errorf("failed to store pending code: %w", err)
	}

	return nil
}

// Validate decides whether submitted matches the pending code for
// (userID, purpose) and consumes it on success. The whole cycle runs
// atomically per record:
//
//   - no pending code            -> ResultInvalid
//   - past expiry                -> ResultExpired, record purged
//   - decrypt failure            -> ResultInvalid, logged, record kept
//   - exact match (sans spaces)  -> ResultValid, record purged
//   - mismatch                   -> ResultInvalid, record kept
//
// Mismatches are not counted or limited here; callers wanting lockout
// semantics add them externally.
func (s *Service) Validate(ctx context.Context, userID uuid.UUID, purpose, submitted string) (Result, error) {
	if purpose == "" {
		return ResultInvalid, ErrInvalidPurpose
	}

	submitted = normalizeCode(submitted)

	result := ResultInvalid
	err := s.store.Update(ctx, userID, s.namespace, purpose, func(current []byte, found bool) ([]byte, error) {
		result = ResultInvalid

		if !found {
			return nil, nil
		}

		var record PendingCode
		if err := json.Unmarshal(current, &record); err != nil {
			s.logger.ErrorContext(ctx, "pending code record is malformed",
				logger.UserID(userID),
				logger.Purpose(purpose),
				logger.Error(err),
				logger.Component("otpcode"),
			)
			return current, nil
		}

		// expiry and code are written together; a record missing either
		// counts as no pending code
		if record.EncryptedValue == "" || record.ExpiresAt == 0 {
			return current, nil
		}

		if s.now().Unix() > record.ExpiresAt {
			result = ResultExpired
			return nil, nil
		}

		stored, err := s.codec.Decrypt(record.EncryptedValue, s.profile)
		if err != nil {
			// Decrypt failure is not a wrong code: log it and leave the
			// record in place so the situation stays observable.
			s.logger.ErrorContext(ctx, "failed to decrypt pending code",
				logger.UserID(userID),
				logger.Purpose(purpose),
				logger.Profile(s.profile),
				logger.Error(err),
				logger.Component("otpcode"),
			)
			return current, nil
		}

		if normalizeCode(stored) == submitted {
			result = ResultValid
			return nil, nil
		}

		return current, nil
	})
	if err != nil {
		return ResultInvalid, fmt.Errorf("failed to validate pending code: %w", err)
	}

	return result, nil
}

// Peek fetches the pending code record for (userID, purpose) without
// decrypting or consuming it. Returns ErrNoPendingCode when absent.
func (s *Service) Peek(ctx context.Context, userID uuid.UUID, purpose string) (*PendingCode, error) {
	if purpose == "" {
		return nil, ErrInvalidPurpose
	}

	payload, err := s.store.Get(ctx, userID, s.namespace, purpose)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return nil, ErrNoPendingCode
		}
		return nil, fmt.Errorf("failed to fetch pending code: %w", err)
	}

	var record PendingCode
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode pending code: %w", err)
	}
	if record.EncryptedValue == "" || record.ExpiresAt == 0 {
		return nil, ErrNoPendingCode
	}

	return &record, nil
}
