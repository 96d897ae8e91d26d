// Package store reads and writes cache entries: an array value encoded with a
// codec, framed by the wire envelope, kept in a provider, and recorded in the
// hash log.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/arraycache/array"
	"github.com/unkn0wn-root/arraycache/codec"
	"github.com/unkn0wn-root/arraycache/hashlog"
	"github.com/unkn0wn-root/arraycache/internal/wire"
	pr "github.com/unkn0wn-root/arraycache/provider"
)

var (
	// ErrNotFound is returned by Read when the provider has no entry.
	ErrNotFound = errors.New("store: entry not found")
	// ErrUntagged is returned by Write for values without a cache tag.
	ErrUntagged = errors.New("store: value has no cache tag")
	// ErrUnsupported is returned by Write for values other than *array.DataArray and *array.Dataset.
	ErrUnsupported = errors.New("store: unsupported array type")
)

type Options struct {
	Provider pr.Provider // required
	Log      hashlog.Log // required
	Format   codec.Format
	// MaxEntryBytes caps the payload size accepted on Read; <= 0 disables the cap.
	MaxEntryBytes int
}

// Store is the CacheStore: entry bytes live in the provider, the filename ->
// hash mapping in the log.
type Store struct {
	provider pr.Provider
	log      hashlog.Log
	format   codec.Format

	arrays   map[codec.Format]codec.Codec[*array.DataArray]
	datasets map[codec.Format]codec.Codec[*array.Dataset]
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, errors.New("store: provider is required")
	}
	if opts.Log == nil {
		return nil, errors.New("store: log is required")
	}
	if opts.Format == 0 {
		opts.Format = codec.FormatCBOR
	}
	if !opts.Format.Valid() {
		return nil, fmt.Errorf("store: %w: %d", codec.ErrUnknownFormat, byte(opts.Format))
	}

	s := &Store{
		provider: opts.Provider,
		log:      opts.Log,
		format:   opts.Format,
		arrays:   make(map[codec.Format]codec.Codec[*array.DataArray]),
		datasets: make(map[codec.Format]codec.Codec[*array.Dataset]),
	}
	// Reads accept every known format: the format is recorded per entry, so a
	// cache dir written under another setting stays readable.
	for _, f := range []codec.Format{codec.FormatCBOR, codec.FormatMsgpack, codec.FormatJSON, codec.FormatProto} {
		ac, err := codec.For[*array.DataArray](f)
		if err != nil {
			return nil, err
		}
		dc, err := codec.For[*array.Dataset](f)
		if err != nil {
			return nil, err
		}
		s.arrays[f] = codec.Limit(ac, opts.MaxEntryBytes)
		s.datasets[f] = codec.Limit(dc, opts.MaxEntryBytes)
	}
	return s, nil
}

// Format is the format used for writes.
func (s *Store) Format() codec.Format { return s.format }

// Ext is the filename extension for entries written by s.
func (s *Store) Ext() string { return s.format.Ext() }

// Lookup returns the hash the log records for filename.
func (s *Store) Lookup(ctx context.Context, filename string) (string, bool, error) {
	return s.log.Lookup(ctx, filename)
}

// Write stores a under filename and records its hash in the log.
// a must carry a cache tag. It returns the value as a later Read will return
// it: decoded from the bytes just written, so attribute types match a hit.
func (s *Store) Write(ctx context.Context, a array.Labeled, filename string) (array.Labeled, error) {
	tag, ok := a.CacheTag()
	if !ok {
		return nil, ErrUntagged
	}

	var (
		kind    wire.Kind
		payload []byte
		stored  array.Labeled
		err     error
	)
	switch v := a.(type) {
	case *array.DataArray:
		kind = wire.KindDataArray
		c := s.arrays[s.format]
		if payload, err = c.Encode(v); err == nil {
			stored, err = c.Decode(payload)
		}
	case *array.Dataset:
		kind = wire.KindDataset
		c := s.datasets[s.format]
		if payload, err = c.Encode(v); err == nil {
			stored, err = c.Decode(payload)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, a)
	}
	if err != nil {
		return nil, fmt.Errorf("store: encode %s: %w", filename, err)
	}

	if err := s.provider.Set(ctx, filename, wire.Encode(kind, byte(s.format), payload)); err != nil {
		return nil, fmt.Errorf("store: write %s: %w", filename, err)
	}
	if err := s.log.Update(ctx, filename, tag.Hash); err != nil {
		return nil, err
	}
	return stored, nil
}

// Read loads the entry stored under filename. It decodes a DataArray first and
// falls back to a Dataset when the entry holds one.
func (s *Store) Read(ctx context.Context, filename string) (array.Labeled, error) {
	raw, ok, err := s.provider.Get(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", filename, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}

	a, err := s.readDataArray(raw)
	if errors.Is(err, wire.ErrKindMismatch) {
		var ds *array.Dataset
		ds, err = s.readDataset(raw)
		if err == nil {
			return ds, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", filename, err)
	}
	return a, nil
}

func (s *Store) readDataArray(raw []byte) (*array.DataArray, error) {
	f, payload, err := wire.Decode(raw, wire.KindDataArray)
	if err != nil {
		return nil, err
	}
	c, ok := s.arrays[codec.Format(f)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", codec.ErrUnknownFormat, f)
	}
	v, err := c.Decode(payload)
	if err == nil && v == nil {
		err = wire.ErrCorrupt
	}
	return v, err
}

func (s *Store) readDataset(raw []byte) (*array.Dataset, error) {
	f, payload, err := wire.Decode(raw, wire.KindDataset)
	if err != nil {
		return nil, err
	}
	c, ok := s.datasets[codec.Format(f)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", codec.ErrUnknownFormat, f)
	}
	v, err := c.Decode(payload)
	if err == nil && v == nil {
		err = wire.ErrCorrupt
	}
	return v, err
}

// Close closes the provider and the log.
func (s *Store) Close(ctx context.Context) error {
	return errors.Join(s.provider.Close(ctx), s.log.Close(ctx))
}
