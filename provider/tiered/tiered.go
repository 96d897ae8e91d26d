// Package tiered puts a fast in-process provider in front of a durable one.
package tiered

import (
	"context"
	"errors"

	pr "github.com/unkn0wn-root/arraycache/provider"
)

// Tiered reads from Front first and falls back to Back, copying back-tier hits
// into Front. Writes go to Back first; Back is authoritative and Front errors
// are ignored on the read path.
type Tiered struct {
	front pr.Provider
	back  pr.Provider
}

var _ pr.Provider = (*Tiered)(nil)

func New(front, back pr.Provider) *Tiered {
	return &Tiered{front: front, back: back}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := t.front.Get(ctx, key); err == nil && ok {
		return b, true, nil
	}
	b, ok, err := t.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.front.Set(ctx, key, b)
	return b, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte) error {
	if err := t.back.Set(ctx, key, value); err != nil {
		// keep the front from serving a value the back never stored
		_ = t.front.Del(ctx, key)
		return err
	}
	return t.front.Set(ctx, key, value)
}

func (t *Tiered) Del(ctx context.Context, key string) error {
	return errors.Join(t.front.Del(ctx, key), t.back.Del(ctx, key))
}

func (t *Tiered) Close(ctx context.Context) error {
	return errors.Join(t.front.Close(ctx), t.back.Close(ctx))
}
