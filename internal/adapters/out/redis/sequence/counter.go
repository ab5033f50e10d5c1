// Package sequence implements the order number counter on a Redis key. INCR is atomic
// on the server, so any number of service instances can share one counter.
package sequence

import (
	"context"
	"errors"

	"purchasing/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "po:sequence:"

// raiseScript sets KEYS[1] to ARGV[1] unless the stored value is already higher.
var raiseScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local target = tonumber(ARGV[1])
if target > current then
	redis.call("SET", KEYS[1], target)
	return target
end
return current
`)

// RedisSequenceCounter issues values from the Redis key po:sequence:<name>.
type RedisSequenceCounter struct {
	client redis.UniversalClient
	key    string
}

func NewRedisSequenceCounter(client redis.UniversalClient, name string) *RedisSequenceCounter {
	return &RedisSequenceCounter{client: client, key: keyPrefix + name}
}

// Key returns the Redis key backing the counter.
func (c *RedisSequenceCounter) Key() string {
	return c.key
}

func (c *RedisSequenceCounter) Next(ctx context.Context) (int64, error) {
	value, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, errs.NewStorageError("increment "+c.key, err)
	}
	return value, nil
}

// EnsureAtLeast raises the counter to n in one script call. A higher stored value is kept.
func (c *RedisSequenceCounter) EnsureAtLeast(ctx context.Context, n int64) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("n", n, 0, "+inf")
	}
	if err := raiseScript.Run(ctx, c.client, []string{c.key}, n).Err(); err != nil {
		return errs.NewStorageError("raise "+c.key, err)
	}
	return nil
}

// Current reads the counter without changing it; 0 when it was never used.
func (c *RedisSequenceCounter) Current(ctx context.Context) (int64, error) {
	value, err := c.client.Get(ctx, c.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.NewStorageError("read "+c.key, err)
	}
	return value, nil
}
