package httpx

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aussiebroadwan/clientdesk/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills and consumes a bucket atomically. State lives in
// a hash {tokens, last_update}; now is fractional seconds so sub-second
// refill works.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- bucket capacity
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- key TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = math.max(0, now - last_update)
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after_ms = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after_ms = math.ceil(((1 - tokens) / rate) * 1000)
	end

	redis.call('HSET', key, 'tokens', tostring(tokens), 'last_update', tostring(now))
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after_ms}
`)

// RedisLimiter is a token bucket shared by every instance pointing at the
// same Redis. Keys are fingerprinted so raw client IPs are never stored.
type RedisLimiter struct {
	client redis.Scripter
	prefix string
	cfg    RateLimitConfig
	ttl    int
}

// NewRedisLimiter creates a limiter storing buckets under prefix.
func NewRedisLimiter(client redis.Scripter, prefix string, cfg RateLimitConfig) *RedisLimiter {
	// Keep state for as long as a drained bucket takes to refill, plus slack.
	ttl := 1
	if r := cfg.PerSecond(); r > 0 {
		ttl = int(math.Ceil(float64(cfg.Burst)/r)) + 1
	}
	return &RedisLimiter{client: client, prefix: prefix, cfg: cfg, ttl: ttl}
}

// RedisLimiters returns a LimiterFactory whose buckets are namespaced by
// profile under "<prefix>:ratelimit:<profile>:".
func RedisLimiters(client redis.Scripter, prefix string) LimiterFactory {
	return func(profile string, cfg RateLimitConfig) Limiter {
		return NewRedisLimiter(client, fmt.Sprintf("%s:ratelimit:%s:", prefix, profile), cfg)
	}
}

func (l *RedisLimiter) Config() RateLimitConfig { return l.cfg }

// Allow consumes one token for key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.cfg.PerSecond() <= 0 {
		return Decision{}, fmt.Errorf("httpx: redis limiter: non-positive rate")
	}

	now := float64(time.Now().UnixMicro()) / 1e6
	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{l.prefix + cryptox.Fingerprint(key)},
		l.cfg.PerSecond(), l.cfg.Burst, now, l.ttl,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("httpx: redis limiter: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("httpx: redis limiter: unexpected reply %v", res)
	}

	return Decision{
		Allowed:    res[0] == 1,
		RetryAfter: time.Duration(res[1]) * time.Millisecond,
	}, nil
}
