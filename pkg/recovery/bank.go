package recovery

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/codec"
	"github.com/dmitrymomot/tfakit/pkg/logger"
	"github.com/dmitrymomot/tfakit/pkg/randcode"
	"github.com/dmitrymomot/tfakit/pkg/userdata"
)

const (
	// Namespace is the default userdata namespace for recovery code sets.
	Namespace = "tfa"
	// RecordKey is the userdata key the set is stored under.
	RecordKey = "recovery_codes"

	// DefaultBatchSize and DefaultCodeLength follow the reference flow:
	// ten alphanumeric codes of nine characters, shown in groups of three.
	DefaultBatchSize  = 10
	DefaultCodeLength = 9

	displayGroupSize = 3
)

// CodeEntry is one stored recovery code. Used entries are kept as
// tombstones and never match again.
type CodeEntry struct {
	EncryptedValue string `json:"encrypted_value"`
	Used           bool   `json:"used"`
}

// CodeSet is the persisted recovery code record of a single user.
// Commit always replaces the whole set; it is never extended in place.
type CodeSet struct {
	UserID uuid.UUID   `json:"user_id"`
	Codes  []CodeEntry `json:"codes"`
}

// Bank generates, stores and consumes recovery codes.
type Bank struct {
	store     userdata.Store
	codec     *codec.Codec
	profile   string
	namespace string
	batchSize int
	codeLen   int
	alphabet  string
	logger    *slog.Logger
}

// BankOption configures a Bank.
type BankOption func(*Bank)

// WithLogger sets a custom logger for the bank.
func WithLogger(log *slog.Logger) BankOption {
	return func(b *Bank) {
		if log != nil {
			b.logger = log
		}
	}
}

// WithBatchSize overrides the number of codes in a generated batch.
func WithBatchSize(size int) BankOption {
	return func(b *Bank) {
		if size > 0 {
			b.batchSize = size
		}
	}
}

// WithCodeLength overrides the length of generated codes.
func WithCodeLength(length int) BankOption {
	return func(b *Bank) {
		if length > 0 {
			b.codeLen = length
		}
	}
}

// WithAlphabet overrides the alphabet codes are drawn from.
func WithAlphabet(alphabet string) BankOption {
	return func(b *Bank) {
		if alphabet != "" {
			b.alphabet = alphabet
		}
	}
}

// WithNamespace overrides the userdata namespace the set lives in.
func WithNamespace(namespace string) BankOption {
	return func(b *Bank) {
		if namespace != "" {
			b.namespace = namespace
		}
	}
}

// NewBank creates a Bank encrypting codes under the named profile.
func NewBank(store userdata.Store, c *codec.Codec, profile string, opts ...BankOption) *Bank {
	b := &Bank{
		store:     store,
		codec:     c,
		profile:   profile,
		namespace: Namespace,
		batchSize: DefaultBatchSize,
		codeLen:   DefaultCodeLength,
		alphabet:  randcode.Alphanumeric,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// PreviewBatch generates a fresh batch of pairwise-distinct plaintext
// codes without persisting anything. Show them to the user, then pass
// them to CommitBatch once the setup step is confirmed.
func (b *Bank) PreviewBatch(_ context.Context) ([]string, error) {
	return randcode.GenerateBatch(b.batchSize, b.codeLen, b.alphabet)
}

// FormatForDisplay renders codes in the human-friendly grouped form,
// e.g. "abc123xyz" -> "abc 123 xyz".
func (b *Bank) FormatForDisplay(codes []string) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = randcode.FormatGroups(code, displayGroupSize)
	}
	return out
}

// CommitBatch encrypts each code independently and replaces the user's
// entire code set. Old codes are discarded whether used or not. Codes
// may be passed in display form; they are normalized before encryption.
func (b *Bank) CommitBatch(ctx context.Context, userID uuid.UUID, plaintextCodes []string) error {
	if len(plaintextCodes) == 0 {
		return ErrEmptyBatch
	}

	entries := make([]CodeEntry, 0, len(plaintextCodes))
	seen := make(map[string]struct{}, len(plaintextCodes))

	for _, code := range plaintextCodes {
		normalized := normalizeCode(code)
		if normalized == "" {
			return ErrEmptyBatch
		}
		if _, dup := seen[normalized]; dup {
			return ErrDuplicateCodes
		}
		seen[normalized] = struct{}{}

		encrypted, err := b.codec.Encrypt(normalized, b.profile)
		if err != nil {
			return fmt.Errorf("failed to encrypt recovery code: %w", err)
		}
		entries = append(entries, CodeEntry{EncryptedValue: encrypted})
	}

	payload, err := json.Marshal(CodeSet{UserID: userID, Codes: entries})
	if err != nil {
		return fmt.Errorf("failed to encode recovery code set: %w", err)
	}

	if err := b.store.Set(ctx, userID, b.namespace, RecordKey, payload); err != nil {
		return fmt.Errorf("failed to store recovery code set: %w", err)
	}

	return nil
}

// Consume matches submitted against the user's unused codes and marks
// the first match as used. Returns true on a successful single-use
// consumption, false when nothing matched (including replays of already
// used codes). The match-and-flip cycle is atomic per user.
func (b *Bank) Consume(ctx context.Context, userID uuid.UUID, submitted string) (bool, error) {
	submitted = normalizeCode(submitted)
	if submitted == "" {
		return false, nil
	}

	matched := false
	err := b.store.Update(ctx, userID, b.namespace, RecordKey, func(current []byte, found bool) ([]byte, error) {
		matched = false

		if !found {
			return nil, nil
		}

		var set CodeSet
		if err := json.Unmarshal(current, &set); err != nil {
			b.logger.ErrorContext(ctx, "recovery code set is malformed",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("recovery"),
			)
			return current, nil
		}

		for i, entry := range set.Codes {
			if entry.Used {
				continue
			}

			stored, err := b.codec.Decrypt(entry.EncryptedValue, b.profile)
			if err != nil {
				b.logger.ErrorContext(ctx, "failed to decrypt recovery code entry",
					logger.UserID(userID),
					logger.Profile(b.profile),
					logger.Error(err),
					logger.Component("recovery"),
				)
				continue
			}

			if subtle.ConstantTimeCompare([]byte(normalizeCode(stored)), []byte(submitted)) == 1 {
				set.Codes[i].Used = true
				matched = true

				next, err := json.Marshal(set)
				if err != nil {
					return nil, fmt.Errorf("failed to encode recovery code set: %w", err)
				}
				return next, nil
			}
		}

		return current, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to consume recovery code: %w", err)
	}

	return matched, nil
}

// Remaining reports how many unused codes the user still holds. A user
// without a stored set has zero remaining codes, not an error.
func (b *Bank) Remaining(ctx context.Context, userID uuid.UUID) (int, error) {
	payload, err := b.store.Get(ctx, userID, b.namespace, RecordKey)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to fetch recovery code set: %w", err)
	}

	var set CodeSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return 0, fmt.Errorf("failed to decode recovery code set: %w", err)
	}

	remaining := 0
	for _, entry := range set.Codes {
		if !entry.Used {
			remaining++
		}
	}
	return remaining, nil
}

// Reset destroys the user's whole code set, used and unused alike.
func (b *Bank) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := b.store.Delete(ctx, userID, b.namespace, RecordKey); err != nil {
		return fmt.Errorf("failed to reset recovery code set: %w", err)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}
