// Package common defines shared constants and sentinel errors used across
// the qrcontact components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration errors.
	ErrorValidation = errors.New("validation error")

	// Exchange errors. UnknownProfile and InvalidToken stay distinct
	// internally; the HTTP layer collapses them into one generic
	// "invalid credentials" response.
	ErrorRateLimited    = errors.New("rate limited")
	ErrorUnknownProfile = errors.New("unknown profile")
	ErrorInvalidToken   = errors.New("invalid token")

	// Delivery port errors. Soft failure: the scan is already recorded.
	ErrorDeliveryFailed = errors.New("delivery failed")
)
