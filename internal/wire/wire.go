package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const version byte = 1

// Kind tells which array variant an entry holds.
type Kind byte

const (
	KindDataArray Kind = 1
	KindDataset   Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindDataArray:
		return "dataarray"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

var (
	ErrCorrupt = errors.New("arraycache: corrupt entry")
	// ErrKindMismatch is returned when a well-formed entry holds another variant.
	ErrKindMismatch = errors.New("arraycache: entry kind mismatch")
	magic4          = [...]byte{'A', 'R', 'R', 'C'}
)

const headerLen = 4 + 1 + 1 + 1 + 4

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | kind(1) | format(1) | vlen(u32 be) | payload(vlen)
func Encode(kind Kind, format byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(byte(kind))
	buf.WriteByte(format)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Peek validates the header and returns the entry kind and format.
func Peek(b []byte) (kind Kind, format byte, err error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version {
		return 0, 0, ErrCorrupt
	}
	kind = Kind(b[5])
	if kind != KindDataArray && kind != KindDataset {
		return 0, 0, ErrCorrupt
	}
	return kind, b[6], nil
}

// Decode returns the payload of an entry that must hold want.
// A valid entry of another kind yields ErrKindMismatch.
func Decode(b []byte, want Kind) (format byte, payload []byte, err error) {
	kind, format, err := Peek(b)
	if err != nil {
		return 0, nil, err
	}
	off := 7
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe, no trailing bytes
		return 0, nil, ErrCorrupt
	}
	if kind != want {
		return 0, nil, fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, kind, want)
	}
	return format, b[off : off+vlen], nil
}
