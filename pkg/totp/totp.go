package totp

import (
	"errors"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Generator enrolls secrets and validates time-based codes.
type Generator struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithPeriod overrides the code rotation period in seconds.
func WithPeriod(period uint) GeneratorOption {
	return func(g *Generator) {
		if period > 0 {
			g.period = period
		}
	}
}

// WithSkew overrides the number of adjacent periods accepted around the
// current one.
func WithSkew(skew uint) GeneratorOption {
	return func(g *Generator) {
		g.skew = skew
	}
}

// WithDigits overrides the code length; values other than 6 or 8 are ignored.
func WithDigits(digits otp.Digits) GeneratorOption {
	return func(g *Generator) {
		if digits == otp.DigitsSix || digits == otp.DigitsEight {
			g.digits = digits
		}
	}
}

// NewGenerator constructs a Generator with the common 30-second period,
// one period of skew and 6-digit codes.
func NewGenerator(issuer string, opts ...GeneratorOption) *Generator {
	g := &Generator{
		issuer: issuer,
		period: 30,
		skew:   1,
		digits: otp.DigitsSix,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Enroll creates a new secret and provisioning URI for an account name.
func (g *Generator) Enroll(accountName string) (secret string, uri string, err error) {
	if g.issuer == "" {
		return "", "", errors.Join(ErrEnrollmentFailed, ErrMissingIssuer)
	}
	if accountName == "" {
		return "", "", errors.Join(ErrEnrollmentFailed, ErrMissingAccountName)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.issuer,
		AccountName: accountName,
		Period:      g.period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      g.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", errors.Join(ErrEnrollmentFailed, err)
	}

	return key.Secret(), key.URL(), nil
}

// ValidateCode checks whether code is valid for secret at the given time.
func (g *Generator) ValidateCode(secret, code string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    g.period,
		Skew:      g.skew,
		Digits:    g.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok && err == nil
}

// GenerateCode creates the code for secret at the given time. Intended
// for tests and device-sync debugging.
func (g *Generator) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    g.period,
		Skew:      g.skew,
		Digits:    g.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}
