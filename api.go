package arraycache

import (
	"context"

	"github.com/unkn0wn-root/arraycache/array"
	"github.com/unkn0wn-root/arraycache/codec"
	"github.com/unkn0wn-root/arraycache/hashlog"
	pr "github.com/unkn0wn-root/arraycache/provider"
)

// Kwargs are the keyword arguments of a call. Values must be JSON serializable.
type Kwargs map[string]any

// ComputeFunc is the pure function being memoized.
type ComputeFunc func(ctx context.Context, in array.Labeled, kwargs Kwargs) (array.Labeled, error)

// Param is a declared parameter of a Func.
type Param struct {
	Name    string
	Default any // nil => null in the signature
	// Variadic marks a collector parameter (catch-all). It is never part of the signature.
	Variadic bool
}

// Func describes a memoizable function: its name, its declared parameters in
// order, and its body.
type Func struct {
	Name    string
	Params  []Param
	Compute ComputeFunc
}

// Outcome reports how a Call was served.
type Outcome uint8

const (
	// OutcomeBypassed: caching was off; the function ran without key or I/O.
	OutcomeBypassed Outcome = iota + 1
	OutcomeHit
	OutcomeMiss
	// OutcomeMissNoIdentity: the input had no declared hash, so the call could
	// never hit. The result was still written.
	OutcomeMissNoIdentity
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBypassed:
		return "bypassed"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeMissNoIdentity:
		return "miss-no-identity"
	default:
		return "unknown"
	}
}

// Options tune the cache. Nothing is required; zero values fall back to an
// on-disk cache under DefaultDir.
type Options struct {
	Dir      string       // "" => "cache"
	Format   codec.Format // 0 => cbor
	Provider pr.Provider  // nil => disk provider in Dir
	Log      hashlog.Log  // nil => Dir/hash.json

	// MaxEntryBytes caps entry payloads accepted on read. 0 => no cap.
	MaxEntryBytes int

	Logger   Logger // if nil, NopLogger is used
	Hooks    Hooks  // if nil, NopHooks is used
	Disabled bool   // default false (enabled); per call see WithCache
	Verbose  bool   // log decisions at Info instead of Debug; per call see WithVerbose
}

type callOptions struct {
	cache   bool
	hash    string
	verbose bool
}

// CallOption controls a single Call. Options are never passed to the wrapped function.
type CallOption func(*callOptions)

// WithCache turns caching on or off for the call.
func WithCache(enabled bool) CallOption {
	return func(o *callOptions) { o.cache = enabled }
}

// WithHash sets the input identity explicitly, overriding the input's "hash" attribute.
func WithHash(hash string) CallOption {
	return func(o *callOptions) { o.hash = hash }
}

// WithVerbose logs the call's cache decisions at Info.
func WithVerbose(verbose bool) CallOption {
	return func(o *callOptions) { o.verbose = verbose }
}
