package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each dataset under <prefix><name>
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBackend connects and pings the server
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &RedisBackend{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

func (b *RedisBackend) key(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidName
	}
	return b.prefix + name, nil
}

func (b *RedisBackend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	key, err := b.key(name)
	if err != nil {
		return nil, false, err
	}

	data, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", name, err)
	}
	return data, true, nil
}

// Set uses a single SET so the value is replaced atomically
func (b *RedisBackend) Set(ctx context.Context, name string, data []byte) error {
	key, err := b.key(name)
	if err != nil {
		return err
	}
	if err := b.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", name, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, name string) error {
	key, err := b.key(name)
	if err != nil {
		return err
	}
	if err := b.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", name, err)
	}
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
