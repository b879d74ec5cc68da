package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores values as Redis strings under prefix+key, without expiry.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password, prefix string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("kv/redis: ping %s: %w", addr, err)
	}
	return &Redis{rdb: rdb, prefix: prefix}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	val, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/redis: get %s: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv/redis: set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("kv/redis: del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
