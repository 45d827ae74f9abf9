package tfa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tfakit/pkg/logger"
	"github.com/dmitrymomot/tfakit/pkg/notifier"
	"github.com/dmitrymomot/tfakit/pkg/otpcode"
	"github.com/dmitrymomot/tfakit/pkg/randcode"
)

const (
	// MethodEmailCode identifies the emailed one-time-code method.
	MethodEmailCode = "email_code"
	// PurposeLoginEmailCode is the pending-code purpose the method issues under.
	PurposeLoginEmailCode = "login_email_code"

	defaultCodeLength   = 9
	defaultCodeValidity = 5 * time.Minute
	displayGroupSize    = 3
)

// EmailCodeMethod issues time-boxed numeric codes, delivers them by
// email and validates submissions against the pending code store.
type EmailCodeMethod struct {
	codes    *otpcode.Service
	settings *SettingsStore
	notifier notifier.Notifier
	catalog  *notifier.Catalog
	ttl      time.Duration
	codeLen  int
	logger   *slog.Logger
}

// EmailCodeOption configures an EmailCodeMethod.
type EmailCodeOption func(*EmailCodeMethod)

// WithValidityPeriod overrides how long issued codes stay valid.
func WithValidityPeriod(ttl time.Duration) EmailCodeOption {
	return func(m *EmailCodeMethod) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithCodeLength overrides the generated code length.
func WithCodeLength(length int) EmailCodeOption {
	return func(m *EmailCodeMethod) {
		if length > 0 {
			m.codeLen = length
		}
	}
}

// WithCatalog overrides the message catalog used to render delivery text.
func WithCatalog(catalog *notifier.Catalog) EmailCodeOption {
	return func(m *EmailCodeMethod) {
		if catalog != nil {
			m.catalog = catalog
		}
	}
}

// WithLogger sets a custom logger for the method.
func WithLogger(log *slog.Logger) EmailCodeOption {
	return func(m *EmailCodeMethod) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewEmailCodeMethod wires the emailed-code method. The default
// rendering catalog is the embedded one; delivery TTL defaults to five
// minutes.
func NewEmailCodeMethod(codes *otpcode.Service, settings *SettingsStore, n notifier.Notifier, opts ...EmailCodeOption) *EmailCodeMethod {
	catalog, err := notifier.DefaultCatalog()
	if err != nil {
		// The embedded catalog is compiled in; failing to parse it is a build defect.
		panic(err)
	}

	m := &EmailCodeMethod{
		codes:    codes,
		settings: settings,
		notifier: n,
		catalog:  catalog,
		ttl:      defaultCodeValidity,
		codeLen:  defaultCodeLength,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *EmailCodeMethod) ID() string { return MethodEmailCode }

// Begin generates a fresh numeric code, stores it as the user's pending
// code and emails it. Delivery failure is logged but does not undo the
// issued code: the user can retry delivery or request a new code, and
// re-issuing replaces the pending entry anyway.
func (m *EmailCodeMethod) Begin(ctx context.Context, userID uuid.UUID, email, locale string) error {
	code, err := randcode.Generate(m.codeLen, randcode.Numeric)
	if err != nil {
		return fmt.Errorf("failed to generate login code: %w", err)
	}

	if err := m.codes.Issue(ctx, userID, PurposeLoginEmailCode, code, m.ttl); err != nil {
		return err
	}

	subject, body := m.catalog.Render(locale, map[string]string{
		"code":    randcode.FormatGroups(code, displayGroupSize),
		"minutes": strconv.Itoa(int(m.ttl / time.Minute)),
	})

	if err := m.notifier.Send(ctx, notifier.Message{
		To:      email,
		Subject: subject,
		Body:    body,
		Locale:  locale,
	}); err != nil {
		m.logger.ErrorContext(ctx, "failed to deliver authentication code",
			logger.UserID(userID),
			logger.Method(MethodEmailCode),
			logger.Error(err),
			logger.Component("tfa"),
		)
	}

	return nil
}

// Validate checks the submitted code against the user's pending code.
func (m *EmailCodeMethod) Validate(ctx context.Context, userID uuid.UUID, code string) (otpcode.Result, error) {
	return m.codes.Validate(ctx, userID, PurposeLoginEmailCode, code)
}

// Ready reports whether the user has at least one enabled method
// recorded, which is the precondition for offering a login code at all.
func (m *EmailCodeMethod) Ready(ctx context.Context, userID uuid.UUID) (bool, error) {
	settings, err := m.settings.Load(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(settings.EnabledMethods) > 0, nil
}
