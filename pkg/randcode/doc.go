// Package randcode produces fixed-length codes from a cryptographically
// secure random source.
//
// Codes are drawn uniformly over a caller-supplied alphabet using
// crypto/rand, which makes the package suitable both for single
// time-boxed login codes (numeric, 9 characters in the default flow)
// and for batches of single-use recovery codes (alphanumeric).
//
// # Usage
//
//	code, err := randcode.Generate(9, randcode.Numeric)
//
//	batch, err := randcode.GenerateBatch(10, 9, randcode.Alphanumeric)
//
//	// Group for display: "135792468" -> "135 792 468"
//	display := randcode.FormatGroups(code, 3)
//
// GenerateBatch guarantees the returned codes are pairwise distinct by
// regenerating on the (negligibly likely) collision.
package randcode
