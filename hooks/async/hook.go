// Package asynchook runs arraycache.Hooks on a bounded worker queue so slow
// sinks never block a Call. Events are dropped when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := arraycache.New(arraycache.Options{Dir: "cache", Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/arraycache"
)

type Hooks struct {
	inner   arraycache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ arraycache.Hooks = (*Hooks)(nil)

func New(inner arraycache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded on a full or closed queue.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	defer func() {
		// lost race with Close: send on closed channel
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Hit(fn, file string)       { h.try(func() { h.inner.Hit(fn, file) }) }
func (h *Hooks) Miss(fn, file string)      { h.try(func() { h.inner.Miss(fn, file) }) }
func (h *Hooks) Bypassed(fn string)        { h.try(func() { h.inner.Bypassed(fn) }) }
func (h *Hooks) NoIdentity(fn, tok string) { h.try(func() { h.inner.NoIdentity(fn, tok) }) }
func (h *Hooks) EntryMissing(file string)  { h.try(func() { h.inner.EntryMissing(file) }) }
func (h *Hooks) StaleLogEntry(file, logged, want string) {
	h.try(func() { h.inner.StaleLogEntry(file, logged, want) })
}
