package domain

import (
	"errors"
)

var (
	// ErrNetwork is returned for transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrMalformedPayload is returned when a response is not valid JSON or
	// its shape is not recognized.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrIdentifierUnparseable is returned when search text is not a valid
	// numeric identifier.
	ErrIdentifierUnparseable = errors.New("identifier unparseable")

	// ErrSessionMissing is returned when no credential or shop scope is available.
	ErrSessionMissing = errors.New("session missing")

	// ErrNotFound is returned when an item is not present in a cache.
	ErrNotFound = errors.New("item not found")
)

// IsAbsorbed reports whether err degrades to an empty result with no
// user-facing message.
func IsAbsorbed(err error) bool {
	return errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrSessionMissing)
}

// IsUserVisible reports whether err should surface as a one-shot message
// when it happens during a user-initiated action.
func IsUserVisible(err error) bool {
	if err == nil || IsAbsorbed(err) || errors.Is(err, ErrIdentifierUnparseable) {
		return false
	}
	return true
}
