package cache

import (
	"context"
	goerrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// DefaultRedisPrefix namespaces diagram entries in a shared redis database.
const DefaultRedisPrefix = "mermaid-filter:"

// RedisBlobs stores entries in redis so several machines (for example CI
// runners) can share rendered diagrams. Entries are stored without expiry as
// msgpack records that are verified against their content hash on read.
type RedisBlobs struct {
	client *redis.Client
	prefix string
}

// NewRedisBlobs connects to the redis server described by url
// (redis://[user:password@]host:port/db). An empty prefix selects
// [DefaultRedisPrefix].
func NewRedisBlobs(url, prefix string) (*RedisBlobs, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBlobs{client: redis.NewClient(opts), prefix: prefix}, nil
}

// Key returns the redis key used for a cache key.
func (b *RedisBlobs) Key(key string) string {
	return b.prefix + key
}

// Get fetches key from redis.
func (b *RedisBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, b.Key(key)).Bytes()
	if goerrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCache, err, "redis get %s", key)
	}
	data, err := decodeRecord(key, raw)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores key in redis without expiry.
func (b *RedisBlobs) Set(ctx context.Context, key string, data []byte) error {
	raw, err := encodeRecord(key, data)
	if err != nil {
		return err
	}
	if err := b.client.Set(ctx, b.Key(key), raw, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "redis set %s", key)
	}
	return nil
}

// Delete removes key from redis.
func (b *RedisBlobs) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.Key(key)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "redis del %s", key)
	}
	return nil
}

// Close closes the redis connection pool.
func (b *RedisBlobs) Close() error {
	return b.client.Close()
}

// Ensure RedisBlobs implements Blobs.
var _ Blobs = (*RedisBlobs)(nil)
