package randcode

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Common alphabets for code generation.
const (
	Numeric      = "0123456789"
	Alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// Generate returns a string of exactly length characters drawn uniformly
// at random from alphabet using crypto/rand.
func Generate(length int, alphabet string) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}

	var sb strings.Builder
	sb.Grow(length)

	max := big.NewInt(int64(len(alphabet)))
	for range length {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Join(ErrGenerationFailed, err)
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}

	return sb.String(), nil
}

// GenerateBatch returns count pairwise-distinct codes of the given length.
// Duplicates are regenerated; with the default alphabets the collision
// probability is negligible, so the loop effectively runs count times.
func GenerateBatch(count, length int, alphabet string) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	codes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)

	for len(codes) < count {
		code, err := Generate(length, alphabet)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[code]; ok {
			continue
		}

		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

// FormatGroups splits code into space-separated chunks of the given size
// for display, e.g. FormatGroups("135792468", 3) == "135 792 468".
// A non-positive size returns the code unchanged.
func FormatGroups(code string, size int) string {
	if size < 1 || len(code) <= size {
		return code
	}

	var sb strings.Builder
	sb.Grow(len(code) + len(code)/size)

	for i := 0; i < len(code); i += size {
		if i > 0 {
			sb.WriteByte(' ')
		}
		end := i + size
		if end > len(code) {
			end = len(code)
		}
		sb.WriteString(code[i:end])
	}

	return sb.String()
}
