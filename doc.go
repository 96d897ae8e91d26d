// Package arraycache memoizes functions over labeled arrays on disk.
//
// A wrapped function is identified by its name and declared parameters. On each
// call the cache derives a key from the call signature and the input's declared
// data identity (the "hash" attribute), looks the entry's filename up in the
// hash log, and either returns the stored result or computes, tags and stores a
// new one.
//
// Components:
//   - array: DataArray and Dataset values and their typed attribute accessors.
//   - Signature/Key: deterministic call description and its SHA-1 digest.
//   - hashlog.Log: filename -> full hash. File (hash.json) by default.
//   - store.Store: entry (de)serialization via codec + provider.
//   - provider.Provider: byte store for entries. Disk by default.
//
// Files:
//
//	<dir>/<array>__<func>__<hash[:3]>.<ext>  - entries
//	<dir>/hash.json                          - log
//
// Usage:
//
//	c, _ := arraycache.New(arraycache.Options{Dir: "cache"})
//	square := c.Wrap(arraycache.Func{Name: "square", Params: []arraycache.Param{{Name: "scale", Default: 1.0}}, Compute: sq})
//	out, outcome, err := square.Call(ctx, in, arraycache.Kwargs{"scale": 2.0})
package arraycache
