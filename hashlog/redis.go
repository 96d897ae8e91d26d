package hashlog

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps the log in one Redis hash so hosts sharing a cache directory
// (or a provider/redis store) agree on which entries are current. HSET is
// atomic per field, so concurrent updates of different filenames never clobber
// each other.
type Redis struct {
	rdb redis.UniversalClient
	key string
}

var _ Log = (*Redis)(nil)

// NewRedis creates a log stored under "arraycache:log:<namespace>".
func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, key: "arraycache:log:" + namespace}
}

// Key returns the Redis key of the hash.
func (r *Redis) Key() string { return r.key }

func (r *Redis) Lookup(ctx context.Context, filename string) (string, bool, error) {
	h, err := r.rdb.HGet(ctx, r.key, filename).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return h, true, nil
}

func (r *Redis) Update(ctx context.Context, filename, hash string) error {
	return r.rdb.HSet(ctx, r.key, filename, hash).Err()
}

// Entries returns the whole log.
func (r *Redis) Entries(ctx context.Context) (map[string]string, error) {
	return r.rdb.HGetAll(ctx, r.key).Result()
}

// Close closes the underlying Redis client.
func (r *Redis) Close(context.Context) error { return r.rdb.Close() }
