package relay

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the rendered pairing-challenge image edge in pixels.
const qrImageSize = 256

// EncodeQR converts a pairing-challenge payload into a PNG data URL that the
// operator page can show directly in an <img> tag.
func EncodeQR(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("encode pairing challenge: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
