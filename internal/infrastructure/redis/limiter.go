package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const keyPrefix = "ratelimit:"

// Limiter is a fixed-window limiter shared by every server process.
type Limiter struct {
	client  *Client
	script  *goredis.Script
	timeout time.Duration
}

func NewLimiter(client *Client) *Limiter {
	if !client.Available() {
		return nil
	}
	return &Limiter{
		client:  client,
		script:  goredis.NewScript(rateLimitScript),
		timeout: 250 * time.Millisecond,
	}
}

// Allow fails open when Redis errors.
func (l *Limiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || !l.client.Available() {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client.client, []string{keyPrefix + key}, ttl, limit).Int64()
	if err != nil {
		l.client.warnUnavailableOnce(err)
		return true
	}
	return allowed == 1
}
