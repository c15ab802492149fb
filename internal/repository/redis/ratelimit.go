package redisrepo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// luaSlidingWindow keeps one sorted-set member per accepted hit, scored by
// its time in ms. Rejected hits are not recorded.
//
//	KEYS[1] limiter key
//	ARGV[1] now, ms
//	ARGV[2] window, ms
//	ARGV[3] limit
//	ARGV[4] unique member for this hit
//
// Returns {allowed, hits in window, retry after ms}.
const luaSlidingWindow = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local hits = redis.call('ZCARD', key)

if hits >= limit then
  local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  local wait = window
  if oldest[2] then
    wait = tonumber(oldest[2]) + window - now
  end
  if wait < 0 then wait = 0 end
  return {0, hits, wait}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, hits + 1, 0}
`

var slidingWindowScript = redis.NewScript(luaSlidingWindow)

// Decision is the outcome of one limiter hit.
type Decision struct {
	Allowed    bool
	Hits       int64
	RetryAfter time.Duration
}

// SlidingWindowLimiter admits at most limit hits per id within any window.
type SlidingWindowLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int
	window time.Duration
	now    func() time.Time
	member func() string
}

func NewSlidingWindowLimiter(rdb *redis.Client, scope string, limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		now:    time.Now,
		member: newMember,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, id string) (Decision, error) {
	const op = "redisrepo.SlidingWindowLimiter.Allow"

	vals, err := slidingWindowScript.Run(
		ctx,
		l.rdb,
		[]string{KeyRateLimit(l.scope, id)},
		l.now().UnixMilli(), l.window.Milliseconds(), l.limit, l.member(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%s:%w", op, err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("%s: unexpected script reply %v", op, vals)
	}

	return Decision{
		Allowed:    vals[0] == 1,
		Hits:       vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func newMember() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
