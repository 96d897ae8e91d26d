package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func mustDecode(t *testing.T, b []byte, k Kind) (byte, []byte) {
	t.Helper()
	f, p, err := Decode(b, k)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return f, p
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		kind    Kind
		format  byte
		payload []byte
	}{
		{KindDataArray, 1, nil},
		{KindDataset, 2, []byte("hello")},
		{KindDataArray, 4, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := Encode(tc.kind, tc.format, tc.payload)
		f, p := mustDecode(t, enc, tc.kind)
		if f != tc.format {
			t.Fatalf("format mismatch: got %d want %d", f, tc.format)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestKindMismatchIsNotCorrupt(t *testing.T) {
	enc := Encode(KindDataset, 1, []byte("x"))
	_, _, err := Decode(enc, KindDataArray)
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if errors.Is(err, ErrCorrupt) {
		t.Fatalf("kind mismatch must not be reported as corruption")
	}
	k, f, err := Peek(enc)
	if err != nil || k != KindDataset || f != 1 {
		t.Fatalf("Peek=%v,%d,%v", k, f, err)
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(KindDataArray, 1, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := Decode(enc, KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(KindDataArray, 1, []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := Decode(badMagic, KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := Decode(badVer, KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on bad version")
	}

	// unknown kind
	badKind := append([]byte(nil), enc...)
	badKind[5] = 9
	if _, _, err := Decode(badKind, KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on unknown kind")
	}

	// vlen too large (announce more than available); vlen sits at 7..10
	tooLong := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooLong[7:11], uint32(len("abc")+1))
	if _, _, err := Decode(tooLong, KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on vlen beyond buffer")
	}

	// truncated buffer
	if _, _, err := Decode(enc[:len(enc)-1], KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on truncated buffer")
	}

	// not an entry at all (e.g. a foreign file in the cache dir)
	if _, _, err := Decode([]byte(`{"a":1}`), KindDataArray); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error on foreign bytes")
	}
}
