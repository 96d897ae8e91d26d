package arraycache

// Hooks lightweight callbacks for cache decisions.
// Implementations MUST be cheap and non-blocking; wrap slow ones with
// hooks/async. The cache calls them on every Call.
type Hooks interface {
	// Served from the entry file.
	Hit(function, filename string)
	// Computed and stored.
	Miss(function, filename string)
	// Caching disabled for the call; the function ran without key or I/O.
	Bypassed(function string)
	// The input had no declared hash; token is the random stand-in.
	// Every such call misses.
	NoIdentity(function, token string)
	// The log holds another hash for filename (same name, different call).
	// The entry is recomputed and superseded.
	StaleLogEntry(filename, logged, want string)
	// The log matched but the entry file was gone; the entry is recomputed.
	EntryMissing(filename string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string, string)                   {}
func (NopHooks) Miss(string, string)                  {}
func (NopHooks) Bypassed(string)                      {}
func (NopHooks) NoIdentity(string, string)            {}
func (NopHooks) StaleLogEntry(string, string, string) {}
func (NopHooks) EntryMissing(string)                  {}
