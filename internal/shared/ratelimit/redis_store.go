package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a distributed rate limit store. Safe for multi-instance
// deployments; decisions are made atomically in Lua scripts.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisStoreOption func(*RedisStore)

// WithRedisPrefix sets a namespace prefix for all keys.
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "ratelimit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Allow(ctx context.Context, key string, config Config) (Result, error) {
	if s == nil || s.client == nil {
		return Result{}, errors.New("ratelimit: redis store is not initialized")
	}

	fullKey := s.prefix + ":" + key

	switch config.Algorithm {
	case AlgorithmFixedWindow:
		return s.fixedWindow(ctx, fullKey, config)
	default:
		return s.tokenBucket(ctx, fullKey, config)
	}
}

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local data = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(data[1]) or burst
local lastRefill = tonumber(data[2]) or now

local refillRate = limit / window
tokens = math.min(burst, tokens + ((now - lastRefill) * refillRate))

local allowed = 0
local retryAfter = 0

if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
else
	retryAfter = (1 - tokens) / refillRate
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('PEXPIRE', key, window * 2)

return {allowed, math.floor(tokens), math.floor(retryAfter)}
`)

func (s *RedisStore) tokenBucket(ctx context.Context, key string, config Config) (Result, error) {
	values, err := tokenBucketScript.Run(ctx, s.client, []string{key},
		config.Limit,
		config.Burst,
		config.Window.Milliseconds(),
		time.Now().UnixMilli(),
	).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis eval failed: %w", err)
	}

	return Result{
		Allowed:    toInt64(values[0]) == 1,
		Limit:      config.Limit,
		Remaining:  toInt64(values[1]),
		ResetAt:    time.Now().Add(config.Window),
		RetryAfter: time.Duration(toInt64(values[2])) * time.Millisecond,
	}, nil
}

var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = tonumber(redis.call('INCR', key))
if current == 1 then
	redis.call('PEXPIRE', key, window)
end

local ttl = redis.call('PTTL', key)
local allowed = 0
local remaining = 0

if current <= limit then
	allowed = 1
	remaining = limit - current
end

return {allowed, remaining, ttl}
`)

func (s *RedisStore) fixedWindow(ctx context.Context, key string, config Config) (Result, error) {
	values, err := fixedWindowScript.Run(ctx, s.client, []string{key},
		config.Limit,
		config.Window.Milliseconds(),
	).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis eval failed: %w", err)
	}

	allowed := toInt64(values[0]) == 1
	ttl := time.Duration(toInt64(values[2])) * time.Millisecond

	result := Result{
		Allowed:   allowed,
		Limit:     config.Limit,
		Remaining: toInt64(values[1]),
		ResetAt:   time.Now().Add(ttl),
	}
	if !allowed {
		result.RetryAfter = ttl
	}

	return result, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return errors.New("ratelimit: redis store is not initialized")
	}
	return s.client.Del(ctx, s.prefix+":"+key).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
