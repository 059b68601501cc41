// Package qrlink builds the lookup URL embedded in a printed QR code and
// wraps the QR encoder. The URL carries the profile id and its secret token;
// it is the only place the token travels after registration.
package qrlink

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// ResolvePath is the HTTP path a scanned code points at.
const ResolvePath = "/api/resolve"

// DefaultImageSize is the QR image edge length in pixels.
const DefaultImageSize = 300

// LookupURL returns base + ResolvePath with profileId and token query
// parameters, properly escaped.
func LookupURL(base, profileID, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	u.Path = ResolvePath

	q := url.Values{}
	q.Set("profileId", profileID)
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// EncodePNG renders the payload as a PNG image of size x size pixels.
// Low error correction matches the short, screen-or-print use of the codes.
func EncodePNG(payload string, size int) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode error: %w", err)
	}
	return png, nil
}
