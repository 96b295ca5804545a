package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the two keys in Redis, optionally under a namespace.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects using a redis:// URL.
func OpenRedis(ctx context.Context, url, prefix string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisBackend(client, prefix), nil
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) dataKey() string  { return b.prefix + DataKey }
func (b *RedisBackend) stampKey() string { return b.prefix + LastModifiedKey }

func (b *RedisBackend) Load(ctx context.Context) (Record, bool, error) {
	vals, err := b.client.MGet(ctx, b.dataKey(), b.stampKey()).Result()
	if err != nil {
		return Record{}, false, err
	}
	data, ok := vals[0].(string)
	if !ok {
		return Record{}, false, nil
	}
	rec := Record{Data: []byte(data)}
	if stamp, ok := vals[1].(string); ok && stamp != "" {
		if rec.LastModified, err = parseStamp(stamp); err != nil {
			return Record{}, false, err
		}
	}
	return rec, true, nil
}

// Save writes both keys in one MULTI/EXEC.
func (b *RedisBackend) Save(ctx context.Context, rec Record) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.dataKey(), rec.Data, 0)
		pipe.Set(ctx, b.stampKey(), formatStamp(rec.LastModified), 0)
		return nil
	})
	return err
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	err := b.client.Del(ctx, b.dataKey(), b.stampKey()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
