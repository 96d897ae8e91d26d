package arraycache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/unkn0wn-root/arraycache/array"
	"github.com/unkn0wn-root/arraycache/internal/util"
)

// filenameHashLen is the number of hash characters embedded in entry filenames.
const filenameHashLen = 3

// Key identifies one cache entry.
type Key struct {
	Hash      string // SHA-1 hex of Signature
	Signature string // JSON of the signature plus hash_input
	Input     string // input identity the key was derived from
	// NoIdentity is set when the input declared no hash and a random token was
	// used instead. Such a key never matches a stored entry.
	NoIdentity bool
}

type keyRecord struct {
	Signature
	HashInput string `json:"hash_input"`
}

func supported(in array.Labeled) error {
	switch v := in.(type) {
	case *array.DataArray:
		if v == nil {
			return fmt.Errorf("%w: nil %T", ErrUnsupportedType, in)
		}
		return nil
	case *array.Dataset:
		if v == nil {
			return fmt.Errorf("%w: nil %T", ErrUnsupportedType, in)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, in)
	}
}

// ResolveKey computes the key for calling fn on in with kwargs.
// The input identity is explicitHash if set, else the input's "hash"
// attribute, else a fresh random token (Key.NoIdentity).
func ResolveKey(in array.Labeled, fn Func, kwargs Kwargs, explicitHash string) (Key, error) {
	if err := supported(in); err != nil {
		return Key{}, err
	}

	identity, noIdentity := explicitHash, false
	if identity == "" {
		if h, ok := in.InputHash(); ok {
			identity = h
		} else {
			identity, noIdentity = util.RandomToken(), true
		}
	}

	raw, err := json.Marshal(keyRecord{
		Signature: BuildSignature(fn, in, kwargs),
		HashInput: identity,
	})
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrUnserializable, err)
	}
	return Key{
		Hash:       util.Digest(raw),
		Signature:  string(raw),
		Input:      identity,
		NoIdentity: noIdentity,
	}, nil
}

// Filename returns the entry filename "{name}__{func}__{hash[:3]}.{ext}".
// Leading and trailing underscores are trimmed, so an unnamed array yields
// "{func}__{hash[:3]}.{ext}". Path separators
// in names are replaced with "-".
func Filename(in array.Labeled, fn Func, hash, ext string) (string, error) {
	if err := supported(in); err != nil {
		return "", err
	}
	prefix := hash
	if len(prefix) > filenameHashLen {
		prefix = prefix[:filenameHashLen]
	}
	name := strings.Join([]string{pathSafe(in.LogicalName()), pathSafe(fn.Name), prefix}, "__")
	name = strings.Trim(name, "_")
	if ext != "" {
		name += "." + ext
	}
	return name, nil
}

func pathSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, s)
}

// FunctionName returns the name of the function that produced a, read from
// its cache signature.
func FunctionName(a array.Labeled) (string, error) {
	tag, ok := a.CacheTag()
	if !ok {
		return "", errors.New("arraycache: value carries no cache signature")
	}
	var rec struct {
		Function map[string]json.RawMessage `json:"function_signature"`
	}
	if err := json.Unmarshal([]byte(tag.Signature), &rec); err != nil {
		return "", fmt.Errorf("arraycache: parse signature: %w", err)
	}
	var name string
	if err := json.Unmarshal(rec.Function[sigNameField], &name); err != nil {
		return "", fmt.Errorf("arraycache: signature has no %s: %w", sigNameField, err)
	}
	return name, nil
}

// Digest returns the SHA-1 hex digest of b. Use it to declare the identity of
// input data (see array.KeyHash).
func Digest(b []byte) string { return util.Digest(b) }

// DigestJSON returns the digest of the JSON encoding of v.
func DigestJSON(v any) (string, error) { return util.DigestJSON(v) }
