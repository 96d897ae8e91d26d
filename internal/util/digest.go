package util

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DigestLen is the length of a Digest result in hex characters.
const DigestLen = 2 * sha1.Size

// Digest returns the hex SHA-1 of b.
// SHA-1 is fixed here: cache keys must stay stable across releases.
func Digest(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// DigestJSON digests the JSON encoding of v.
// Maps encode with sorted keys, so equal values give equal digests.
func DigestJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest: encode: %w", err)
	}
	return Digest(b), nil
}

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() string {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("arraycache: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
