// Package tfa wires the code lifecycle packages into concrete
// second-factor validation methods behind a small registry.
//
// Three methods ship with the package:
//
//   - EmailCodeMethod    – sends a 9-digit one-time code by email and
//     validates it against the pending code store.
//   - RecoveryCodeMethod – consumes single-use recovery codes.
//   - TOTPMethod         – validates authenticator-app codes against an
//     encrypted stored seed.
//
// Methods are registered explicitly under their identifiers; there is
// no reflection-based discovery. Which methods a given user has enabled
// lives in UserSettings, read through the shared userdata store.
//
// # Usage
//
//	registry := tfa.NewRegistry()
//	err := registry.Register(tfa.NewEmailCodeMethod(codes, settings, mailer))
//	err = registry.Register(tfa.NewRecoveryCodeMethod(bank))
//
//	method, err := registry.Get(tfa.MethodEmailCode)
//	result, err := method.Validate(ctx, userID, submitted)
//
// Per-purpose tuning (code validity period, recovery batch size, TOTP
// issuer) comes from Config, loaded from the environment.
package tfa
