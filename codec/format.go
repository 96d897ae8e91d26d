package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Format names an entry encoding. Its byte value is persisted in entry headers,
// so existing values must never be renumbered.
type Format byte

const (
	FormatCBOR    Format = 1
	FormatMsgpack Format = 2
	FormatJSON    Format = 3
	FormatProto   Format = 4
)

var ErrUnknownFormat = errors.New("codec: unknown format")

var formatNames = map[Format]string{
	FormatCBOR:    "cbor",
	FormatMsgpack: "msgpack",
	FormatJSON:    "json",
	FormatProto:   "proto",
}

// ParseFormat resolves a format name (case-insensitive). "" means CBOR.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatCBOR, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("format(%d)", byte(f))
}

// Ext is the file extension used for entries of this format.
func (f Format) Ext() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatJSON:
		return "json"
	case FormatProto:
		return "pb"
	default:
		return "cbor"
	}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// For returns the codec implementing f for V.
// CBOR uses deterministic (RFC 8949 core) encoding.
func For[V any](f Format) (Codec[V], error) {
	switch f {
	case FormatCBOR:
		c, err := NewCBOR[V]()
		if err != nil {
			return nil, err
		}
		return c, nil
	case FormatMsgpack:
		return Msgpack[V]{}, nil
	case FormatJSON:
		return JSON[V]{}, nil
	case FormatProto:
		return Struct[V]{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, byte(f))
	}
}
