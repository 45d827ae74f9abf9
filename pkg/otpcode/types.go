package otpcode

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace is the default userdata namespace for pending codes.
const Namespace = "tfa"

// PendingCode is the persisted record of an issued, not-yet-consumed
// one-time code. EncryptedValue and ExpiresAt are always set together;
// a record missing either is treated as "no pending code".
type PendingCode struct {
	UserID         uuid.UUID `json:"user_id"`
	Purpose        string    `json:"purpose"`
	EncryptedValue string    `json:"encrypted_value"`
	ExpiresAt      int64     `json:"expires_at"` // Unix seconds
}

// Result is the three-way outcome of validating a submitted code.
type Result int

const (
	ResultInvalid Result = iota
	ResultValid
	ResultExpired
)

func (r Result) String() string {
	switch r {
	case ResultValid:
		return "valid"
	case ResultExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// normalizeCode strips all whitespace so display groupings like
// "135 792 468" compare equal to the issued code. Comparison stays
// case-sensitive.
func normalizeCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}
