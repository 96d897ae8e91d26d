package arraycache

// DefaultDir is the cache directory used when Options.Dir is empty.
const DefaultDir = "cache"

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
