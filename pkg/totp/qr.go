package totp

import (
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// defaultQRSize is the size in pixels used when no size is specified.
const defaultQRSize = 256

// QRCodePNG renders a provisioning URI as a QR code PNG for display
// during authenticator enrollment.
func QRCodePNG(uri string, size int) ([]byte, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultQRSize
	}

	png, err := skipqrcode.Encode(uri, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRGenerationFailed, err)
	}
	return png, nil
}
