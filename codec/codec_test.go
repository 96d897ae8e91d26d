package codec

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/arraycache/array"
)

func sample() *array.DataArray {
	a := array.New1D("bar", "x", []float64{1, 4, 9, 16}, []string{"a", "b", "c", "d"})
	a.SetCacheTag(array.Tag{Hash: "deadbeef", Signature: `{"array_name":"bar"}`})
	return a
}

func TestFormatsPreserveArrays(t *testing.T) {
	for _, f := range []Format{FormatCBOR, FormatMsgpack, FormatJSON, FormatProto} {
		t.Run(f.String(), func(t *testing.T) {
			c, err := For[*array.DataArray](f)
			if err != nil {
				t.Fatalf("For(%s): %v", f, err)
			}
			in := sample()
			b, err := c.Encode(in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			out, err := c.Decode(b)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !out.Equal(in) {
				t.Fatalf("decoded %+v != %+v", out, in)
			}
			tag, ok := out.CacheTag()
			if !ok || tag.Hash != "deadbeef" || tag.Signature != `{"array_name":"bar"}` {
				t.Fatalf("tag lost: %+v ok=%v", tag, ok)
			}
		})
	}
}

func TestDeterministicEncodings(t *testing.T) {
	for _, f := range []Format{FormatCBOR, FormatMsgpack, FormatProto} {
		c, err := For[array.Attrs](f)
		if err != nil {
			t.Fatal(err)
		}
		a := array.Attrs{"z": "1", "a": "2", "m": "3", "q": "4"}
		b := array.Attrs{"q": "4", "m": "3", "a": "2", "z": "1"}
		ea, _ := c.Encode(a)
		eb, _ := c.Encode(b)
		if string(ea) != string(eb) {
			t.Fatalf("%s: equal attrs encoded differently", f)
		}
	}
}

func TestCBORNestedMapsDecodeWithStringKeys(t *testing.T) {
	c, err := NewCBOR[array.Attrs]()
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode(array.Attrs{"units": map[string]any{"x": "m"}})
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["units"].(map[string]any); !ok {
		t.Fatalf("nested map decoded as %T", out["units"])
	}
}

func TestCBORLargeArray(t *testing.T) {
	c, err := NewCBOR[*array.DataArray]()
	if err != nil {
		t.Fatal(err)
	}
	in := array.New1D("big", "x", make([]float64, 200_000), nil)
	b, err := c.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Values) != len(in.Values) {
		t.Fatalf("got %d values", len(out.Values))
	}
}

func TestLimitCodec(t *testing.T) {
	inner := JSON[string]{}
	if _, ok := Limit[string](inner, 0).(JSON[string]); !ok {
		t.Fatalf("Limit with max<=0 should return the inner codec")
	}
	c := Limit[string](inner, 8)
	b, _ := c.Encode("this string is long")
	if _, err := c.Decode(b); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	b, _ = c.Encode("ok")
	if v, err := c.Decode(b); err != nil || v != "ok" {
		t.Fatalf("Decode small: %q %v", v, err)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatCBOR, "CBOR": FormatCBOR, "msgpack": FormatMsgpack, " json ": FormatJSON, "proto": FormatProto}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("netcdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if FormatProto.Ext() != "pb" || FormatCBOR.Ext() != "cbor" {
		t.Fatalf("unexpected extensions")
	}
	if Format(99).Valid() {
		t.Fatalf("format 99 should be invalid")
	}
}
