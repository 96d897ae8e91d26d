package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestNilClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("ARRAYCACHE_REDIS_ADDR")
	if addr == "" {
		t.Skip("ARRAYCACHE_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	p, err := New(Config{Client: rdb, Namespace: t.Name(), CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close(ctx)

	if err := p.Set(ctx, "bar__f__abc.cbor", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	defer p.Del(ctx, "bar__f__abc.cbor")

	b, ok, err := p.Get(ctx, "bar__f__abc.cbor")
	if err != nil || !ok || string(b) != "v" {
		t.Fatalf("Get=%q ok=%v err=%v", b, ok, err)
	}
	if _, ok, err := p.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing: ok=%v err=%v", ok, err)
	}
}
