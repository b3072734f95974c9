package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Manager backed by a redis server, for deployments where
// multiple processes must observe the same sessions.
type Redis struct {
	client    redis.UniversalClient
	keyPrefix string
}

var _ Manager = (*Redis)(nil)

type RedisModifier func(*Redis)

// WithKeyPrefix sets the prefix prepended to every redis key.
func WithKeyPrefix(prefix string) RedisModifier {
	return func(r *Redis) {
		r.keyPrefix = prefix
	}
}

// WithClient uses an existing redis client instead of dialing a new one.
func WithClient(client redis.UniversalClient) RedisModifier {
	return func(r *Redis) {
		r.client = client
	}
}

// NewRedis returns a Manager storing values on the redis server at addr.
//
// The connection is verified with a ping before the manager is returned.
func NewRedis(addr string, mods ...RedisModifier) (*Redis, error) {
	r := &Redis{keyPrefix: "slim:session:"}
	for _, m := range mods {
		m(r)
	}
	if r.client == nil {
		r.client = redis.NewClient(&redis.Options{Addr: addr})
	}

	if err := r.client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed - %w", err)
	}
	return r, nil
}

func (r *Redis) key(id, key string) string {
	return r.keyPrefix + id + ":" + key
}

func (r *Redis) Get(ctx context.Context, id, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(id, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

func (r *Redis) Set(ctx context.Context, id, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(id, key), value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, id, key string) error {
	return r.client.Del(ctx, r.key(id, key)).Err()
}

// Close releases the underlying redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
