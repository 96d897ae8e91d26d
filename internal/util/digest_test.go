package util

import (
	"strings"
	"testing"
)

func TestDigestKnownValue(t *testing.T) {
	// sha1("abc")
	const want = "a9993e364706816aba3e25717850c26c9cd0d89d"
	if got := Digest([]byte("abc")); got != want {
		t.Fatalf("Digest(abc)=%s want %s", got, want)
	}
	if len(Digest(nil)) != DigestLen {
		t.Fatalf("unexpected digest length")
	}
}

func TestDigestJSONMapOrderInsensitive(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1, "c": []any{"x", nil}}
	b := map[string]any{"c": []any{"x", nil}, "a": 1, "b": 2}
	ha, err := DigestJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := DigestJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Fatalf("equal maps digested differently: %s vs %s", ha, hb)
	}
	hc, _ := DigestJSON(map[string]any{"a": 1, "b": 3})
	if hc == ha {
		t.Fatalf("different values must change the digest")
	}
}

func TestDigestJSONUnserializable(t *testing.T) {
	_, err := DigestJSON(map[string]any{"ch": make(chan int)})
	if err == nil || !strings.Contains(err.Error(), "digest: encode") {
		t.Fatalf("expected encode error, got %v", err)
	}
}

func TestRandomTokenUnique(t *testing.T) {
	a, b := RandomToken(), RandomToken()
	if a == b {
		t.Fatalf("two tokens collided: %s", a)
	}
	if len(a) != 64 {
		t.Fatalf("token length %d want 64", len(a))
	}
}
