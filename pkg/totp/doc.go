// Package totp supports authenticator-app (RFC 6238) validation as an
// additional second-factor method.
//
// The package wraps pquerna/otp for secret enrollment and time-window
// code validation, stores the per-user seed encrypted through the
// module codec (never plaintext at rest), and renders the provisioning
// URI as a QR code PNG for onboarding into Google Authenticator,
// 1Password and compatible apps.
//
// # Usage
//
//	gen := totp.NewGenerator("Acme")
//	secret, uri, err := gen.Enroll("alice@example.com")
//
//	png, err := totp.QRCodePNG(uri, 256)
//
//	seeds := totp.NewSeedStore(store, c, codec.DefaultProfile)
//	err = seeds.Save(ctx, userID, secret)
//
//	secret, err = seeds.Load(ctx, userID)
//	ok := gen.ValidateCode(secret, "123456", time.Now())
package totp
