// Package provider defines the byte store that holds cache entry files.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). Keys are cache filenames of the form
// "<array>__<func>__<hash prefix>.<ext>"; they never contain path separators.
package provider

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for keys that cannot name a cache entry.
var ErrInvalidKey = errors.New("provider: invalid key")

// Provider is a minimal byte store.
// It must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Del removes a key (best-effort; missing keys are not an error).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
