package hashlog

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestRedisLookupUpdate(t *testing.T) {
	addr := os.Getenv("ARRAYCACHE_REDIS_ADDR")
	if addr == "" {
		t.Skip("ARRAYCACHE_REDIS_ADDR not set")
	}
	ctx := context.Background()
	r := NewRedis(redis.NewClient(&redis.Options{Addr: addr}), t.Name())
	defer r.Close(ctx)
	defer r.rdb.Del(ctx, r.Key())

	if _, ok, err := r.Lookup(ctx, "bar__f__abc.cbor"); err != nil || ok {
		t.Fatalf("empty log lookup: ok=%v err=%v", ok, err)
	}
	if err := r.Update(ctx, "bar__f__abc.cbor", "abc1"); err != nil {
		t.Fatal(err)
	}
	h, ok, err := r.Lookup(ctx, "bar__f__abc.cbor")
	if err != nil || !ok || h != "abc1" {
		t.Fatalf("Lookup=%q ok=%v err=%v", h, ok, err)
	}
	m, err := r.Entries(ctx)
	if err != nil || len(m) != 1 {
		t.Fatalf("Entries=%v err=%v", m, err)
	}
}
