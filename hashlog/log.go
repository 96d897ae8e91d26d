// Package hashlog records which hash each cache entry file was written for.
//
// A file name embeds only a short hash prefix, so a lookup that finds a file is
// not proof of a hit. The log maps every filename to the full hash it holds;
// the cache serves an entry only when the logged hash equals the resolved one.
package hashlog

import (
	"context"
	"errors"
)

// ErrCorrupt is returned when a log cannot be parsed. It is not repaired.
var ErrCorrupt = errors.New("hashlog: corrupt log")

// Log abstracts where the filename -> hash mapping lives.
// Use File (default) for the hash.json next to the entries, Memory for
// throwaway caches, or Redis to share one log between hosts.
type Log interface {
	// Lookup returns the hash recorded for filename; ok is false if unknown.
	Lookup(ctx context.Context, filename string) (hash string, ok bool, err error)
	// Update records hash for filename, replacing any previous value.
	Update(ctx context.Context, filename, hash string) error
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
