package arraycache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/unkn0wn-root/arraycache/array"
	"github.com/unkn0wn-root/arraycache/hashlog"
	"github.com/unkn0wn-root/arraycache/provider/disk"
	"github.com/unkn0wn-root/arraycache/store"
)

// Cache memoizes wrapped functions into one cache directory.
// It is safe for concurrent use; concurrent misses on the same entry both
// compute and the last write wins.
type Cache struct {
	dir     string
	logPath string
	store   *store.Store
	log     Logger
	hooks   Hooks
	enabled bool
	verbose bool
}

func New(opts Options) (*Cache, error) {
	c := &Cache{
		dir:     coalesce(opts.Dir, DefaultDir),
		enabled: !opts.Disabled,
		verbose: opts.Verbose,
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	provider := opts.Provider
	if provider == nil {
		provider = disk.New(c.dir)
	}
	hl := opts.Log
	if hl == nil {
		hl = hashlog.NewFile(c.dir)
	}
	if f, ok := hl.(*hashlog.File); ok {
		c.logPath = f.Path()
	} else {
		c.logPath = filepath.Join(c.dir, hashlog.FileName)
	}

	s, err := store.New(store.Options{
		Provider:      provider,
		Log:           hl,
		Format:        opts.Format,
		MaxEntryBytes: opts.MaxEntryBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("arraycache: %w", err)
	}
	c.store = s
	return c, nil
}

// Dir is the cache directory.
func (c *Cache) Dir() string { return c.dir }

// LogPath is the path of hash.json in the cache directory.
func (c *Cache) LogPath() string { return c.logPath }

// Ext is the extension of entry files written by c.
func (c *Cache) Ext() string { return c.store.Ext() }

func (c *Cache) Enabled() bool { return c.enabled }

// Close closes the entry provider and the hash log.
func (c *Cache) Close(ctx context.Context) error { return c.store.Close(ctx) }

// Wrap returns the cached form of fn.
func (c *Cache) Wrap(fn Func) *Cached {
	return &Cached{c: c, fn: fn}
}

// Cached is a function wrapped by a Cache.
type Cached struct {
	c  *Cache
	fn Func
}

func (w *Cached) Name() string { return w.fn.Name }

func (w *Cached) options(opts []CallOption) callOptions {
	o := callOptions{cache: w.c.enabled, verbose: w.c.verbose}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Key resolves the key of a call without any I/O. Only WithHash is relevant.
func (w *Cached) Key(in array.Labeled, kwargs Kwargs, opts ...CallOption) (Key, error) {
	o := w.options(opts)
	return ResolveKey(in, w.fn, kwargs, o.hash)
}

// Filename returns the entry filename of a call without any I/O.
func (w *Cached) Filename(in array.Labeled, kwargs Kwargs, opts ...CallOption) (string, error) {
	k, err := w.Key(in, kwargs, opts...)
	if err != nil {
		return "", err
	}
	return Filename(in, w.fn, k.Hash, w.c.store.Ext())
}

// Call runs the wrapped function on in, or returns its stored result.
//
// With caching off the function runs directly (OutcomeBypassed). Otherwise the
// call key is resolved and its filename looked up in the hash log; when the
// logged hash matches, the stored entry is returned (OutcomeHit). Anything
// else computes the result, tags it with hash and signature, and stores it
// (OutcomeMiss, or OutcomeMissNoIdentity for inputs without a declared hash).
// Errors are *CallError.
func (w *Cached) Call(ctx context.Context, in array.Labeled, kwargs Kwargs, opts ...CallOption) (array.Labeled, Outcome, error) {
	o := w.options(opts)
	d := diag{l: w.c.log, verbose: o.verbose}
	fname := w.fn.Name

	if err := w.validate(); err != nil {
		return nil, 0, &CallError{Func: fname, Stage: StageKey, Err: err}
	}

	if !o.cache {
		d.note("caching disabled, calling function directly", Fields{"func": fname})
		w.c.hooks.Bypassed(fname)
		out, err := w.compute(ctx, in, kwargs)
		if err != nil {
			return nil, 0, &CallError{Func: fname, Stage: StageCompute, Err: err}
		}
		return out, OutcomeBypassed, nil
	}

	key, err := ResolveKey(in, w.fn, kwargs, o.hash)
	if err != nil {
		return nil, 0, &CallError{Func: fname, Stage: StageKey, Err: err}
	}
	if key.NoIdentity {
		d.warn("no input hash found, using a random one; the result will not be reused", Fields{"func": fname, "hash": key.Input})
		w.c.hooks.NoIdentity(fname, key.Input)
	}

	file, err := Filename(in, w.fn, key.Hash, w.c.store.Ext())
	if err != nil {
		return nil, 0, &CallError{Func: fname, Stage: StageKey, Err: err}
	}

	logged, ok, err := w.c.store.Lookup(ctx, file)
	if err != nil {
		return nil, 0, &CallError{Func: fname, Filename: file, Stage: StageLookup, Err: err}
	}
	switch {
	case ok && logged == key.Hash:
		out, err := w.c.store.Read(ctx, file)
		if err == nil {
			d.note("returning stored entry", Fields{"func": fname, "file": file, "dir": w.c.dir})
			w.c.hooks.Hit(fname, file)
			return out, OutcomeHit, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, 0, &CallError{Func: fname, Filename: file, Stage: StageRead, Err: err}
		}
		d.warn("entry listed in log but missing, recomputing", Fields{"func": fname, "file": file})
		w.c.hooks.EntryMissing(file)
	case ok:
		d.note("entry holds another call, superseding", Fields{"func": fname, "file": file, "logged": logged})
		w.c.hooks.StaleLogEntry(file, logged, key.Hash)
	}

	out, err := w.compute(ctx, in, kwargs)
	if err != nil {
		return nil, 0, &CallError{Func: fname, Filename: file, Stage: StageCompute, Err: err}
	}
	out.SetCacheTag(array.Tag{Hash: key.Hash, Signature: key.Signature})

	d.note("storing entry", Fields{"func": fname, "file": file, "dir": w.c.dir})
	// return the stored form so attribute types match what a later hit returns
	out, err = w.c.store.Write(ctx, out, file)
	if err != nil {
		return nil, 0, &CallError{Func: fname, Filename: file, Stage: StageWrite, Err: err}
	}
	d.note("log updated", Fields{"log": w.c.logPath, "file": file, "hash": key.Hash})
	w.c.hooks.Miss(fname, file)

	if key.NoIdentity {
		return out, OutcomeMissNoIdentity, nil
	}
	return out, OutcomeMiss, nil
}

func (w *Cached) validate() error {
	if w.fn.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidFunc)
	}
	if w.fn.Compute == nil {
		return fmt.Errorf("%w: %s has no body", ErrInvalidFunc, w.fn.Name)
	}
	for _, p := range w.fn.Params {
		if p.Name == sigNameField || p.Name == sigTypeField {
			return fmt.Errorf("%w: %s: reserved parameter name %q", ErrInvalidFunc, w.fn.Name, p.Name)
		}
	}
	return nil
}

func (w *Cached) compute(ctx context.Context, in array.Labeled, kwargs Kwargs) (array.Labeled, error) {
	out, err := w.fn.Compute(ctx, in, kwargs)
	if err != nil {
		return nil, err
	}
	if out == nil || isNilValue(out) {
		return nil, ErrNilResult
	}
	return out, nil
}

func isNilValue(a array.Labeled) bool {
	switch v := a.(type) {
	case *array.DataArray:
		return v == nil
	case *array.Dataset:
		return v == nil
	}
	return false
}
