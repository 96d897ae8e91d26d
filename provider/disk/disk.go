// Package disk stores cache entries as files in one directory.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/arraycache/internal/util"
	pr "github.com/unkn0wn-root/arraycache/provider"
)

// Disk keeps one file per key under Dir. The directory is created on first Set.
type Disk struct {
	dir string
}

var _ pr.Provider = (*Disk)(nil)

func New(dir string) *Disk {
	return &Disk{dir: dir}
}

// Dir returns the cache directory.
func (d *Disk) Dir() string { return d.dir }

// Path returns the file path for key.
func (d *Disk) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: %q", pr.ErrInvalidKey, key)
	}
	return filepath.Join(d.dir, key), nil
}

func (d *Disk) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := d.Path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set writes value to a temp file in Dir and renames it over the entry, so
// readers see either the old or the new entry, never a partial one.
func (d *Disk) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.Path(key)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(p, value)
}

func (d *Disk) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := d.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Disk) Close(context.Context) error { return nil }
