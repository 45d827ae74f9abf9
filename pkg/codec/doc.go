// Package codec encrypts and decrypts short secrets under named
// encryption profiles.
//
// A profile is a name bound to a 32-byte master key. The effective
// AES-256 key for each profile is derived with HKDF-SHA256 using the
// profile name as salt, so two profiles backed by the same master key
// still produce incompatible ciphertexts. Ciphertexts are transported
// as base64(nonce || AES-256-GCM sealed data).
//
// The codec is a pure transform with no persistent state and is safe
// for concurrent use.
//
// # Usage
//
//	resolver := codec.StaticResolver{codec.DefaultProfile: key}
//	c := codec.New(resolver)
//
//	ciphertext, err := c.Encrypt("135792468", codec.DefaultProfile)
//	plaintext, err := c.Decrypt(ciphertext, codec.DefaultProfile)
//
// The default profile key can also be loaded from the environment
// variable TFA_ENCRYPTION_KEY (base64 encoded, 32 bytes decoded) via
// LoadConfig and NewResolverFromConfig.
//
// # Error Handling
//
// Inspect errors with errors.Is against the package sentinels such as
// ErrProfileNotFound, ErrEncryptionFailed, ErrDecryptionFailed and
// ErrInvalidCiphertext. Errors are wrapped with errors.Join so both the
// sentinel and the underlying cause remain visible.
package codec
