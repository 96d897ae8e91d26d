package hashlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/unkn0wn-root/arraycache/internal/util"
)

// FileName is the log file kept in the cache directory.
const FileName = "hash.json"

const lockRetry = 10 * time.Millisecond

// File keeps the log as one JSON object in {dir}/hash.json.
//
// Update is a locked read-modify-write followed by an atomic rename, so
// concurrent updates of different filenames are not lost and readers never see
// a partial file. Two processes writing the same filename still race: the last
// writer wins, and its entry file may pair with the other's hash until the
// next write.
type File struct {
	dir  string
	path string
	lock *flock.Flock
}

var _ Log = (*File)(nil)

func NewFile(dir string) *File {
	p := filepath.Join(dir, FileName)
	return &File{dir: dir, path: p, lock: flock.New(p + ".lock")}
}

// Path returns the log file path.
func (f *File) Path() string { return f.path }

func (f *File) Lookup(ctx context.Context, filename string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m, err := f.load()
	if err != nil {
		return "", false, err
	}
	h, ok := m[filename]
	return h, ok, nil
}

func (f *File) Update(ctx context.Context, filename, hash string) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("hashlog: create dir: %w", err)
	}
	locked, err := f.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("hashlog: lock %s: %w", f.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("hashlog: lock %s: not acquired", f.lock.Path())
	}
	defer func() { _ = f.lock.Unlock() }()

	m, err := f.load()
	if err != nil {
		return err
	}
	m[filename] = hash

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("hashlog: encode: %w", err)
	}
	if err := util.WriteFileAtomic(f.path, buf.Bytes()); err != nil {
		return fmt.Errorf("hashlog: %w", err)
	}
	return nil
}

// Entries returns the whole log.
func (f *File) Entries(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.load()
}

func (f *File) Close(context.Context) error { return nil }

// load reads the log; a missing file is an empty log.
func (f *File) load() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("hashlog: read %s: %w", f.path, err)
	}
	m := make(map[string]string)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if m == nil { // literal "null"
		m = make(map[string]string)
	}
	return m, nil
}
