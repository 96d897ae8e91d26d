// Package sloghooks reports cache decisions to a *slog.Logger.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/arraycache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional filename redactor. Defaults to the identity; see HashNames.
	Redact func(string) string
}

// HashNames redacts filenames to a SHA-256 prefix. Array names end up in
// filenames, and some deployments treat them as sensitive.
func HashNames(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:8])
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ arraycache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(name string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(name)
	}
	return name
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(function, filename string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("arraycache.hit",
		"func", function,
		"file", h.redact(filename))
}

func (h *Hooks) Miss(function, filename string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("arraycache.miss",
		"func", function,
		"file", h.redact(filename))
}

func (h *Hooks) Bypassed(function string) {
	if h.l == nil {
		return
	}
	h.l.Debug("arraycache.bypassed", "func", function)
}

func (h *Hooks) NoIdentity(function, token string) {
	if h.l == nil {
		return
	}
	h.l.Warn("arraycache.no_identity",
		"func", function,
		"token", token)
}

func (h *Hooks) StaleLogEntry(filename, logged, want string) {
	if h.l == nil {
		return
	}
	h.l.Info("arraycache.stale_log_entry",
		"file", h.redact(filename),
		"logged", logged,
		"want", want)
}

func (h *Hooks) EntryMissing(filename string) {
	if h.l == nil {
		return
	}
	h.l.Warn("arraycache.entry_missing", "file", h.redact(filename))
}
