// Package array defines the labeled array values that arraycache memoizes.
//
// Two variants are supported: DataArray, a single named array, and Dataset, a
// container of named arrays sharing one coordinate system. Both carry an
// attribute mapping (Attrs). The cache reads and writes its metadata through the
// narrow Labeled accessor set only, never through raw map mutation.
package array

// Reserved attribute keys.
const (
	KeyHash      = "hash"            // declared input identity; output hash on results
	KeySignature = "cache_signature" // canonical JSON of the call that produced the value
	KeyName      = "name"            // logical name when the value has no native name
)

// DefaultDatasetName is the logical name of a Dataset without a "name" attribute.
const DefaultDatasetName = "dataset"

// Tag is the metadata attached to every value written by the cache.
type Tag struct {
	Hash      string
	Signature string
}

// Labeled is the accessor surface the cache needs from an array value.
type Labeled interface {
	// LogicalName is the name used in cache filenames and call signatures.
	LogicalName() string
	// InputHash returns the declared data identity of the value.
	InputHash() (string, bool)
	// CacheTag returns the hash/signature pair attached by the cache.
	CacheTag() (Tag, bool)
	// SetCacheTag attaches hash and signature.
	SetCacheTag(Tag)
}

var (
	_ Labeled = (*DataArray)(nil)
	_ Labeled = (*Dataset)(nil)
)

// Attrs is the free-form attribute mapping of an array value.
// Reserved keys are accessed through the typed methods below.
type Attrs map[string]any

func (a Attrs) str(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	s, ok := a[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Hash returns the "hash" attribute. A present empty string is a hash;
// a non-string value is treated as absent.
func (a Attrs) Hash() (string, bool) {
	s, ok := a[KeyHash].(string)
	return s, ok
}

// Signature returns the "cache_signature" attribute.
func (a Attrs) Signature() (string, bool) { return a.str(KeySignature) }

// Name returns the "name" attribute.
func (a Attrs) Name() (string, bool) { return a.str(KeyName) }

// Clone returns a shallow copy.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func (a *Attrs) setTag(t Tag) {
	if *a == nil {
		*a = make(Attrs, 2)
	}
	(*a)[KeyHash] = t.Hash
	(*a)[KeySignature] = t.Signature
}

func (a Attrs) tag() (Tag, bool) {
	h, ok := a.str(KeyHash)
	if !ok {
		return Tag{}, false
	}
	s, ok := a.Signature()
	if !ok {
		return Tag{}, false
	}
	return Tag{Hash: h, Signature: s}, true
}
