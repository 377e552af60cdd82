package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woodcrrests/scratchcard_api/internal/cache"
)

// Throttle for failed login attempts only.
// Limit: 5 failures per minute per IP, counted in Redis so the limit holds
// across instances.
type LoginThrottle struct {
	redis  *cache.RedisClient
	limit  int
	window time.Duration
}

func NewLoginThrottle(redis *cache.RedisClient) *LoginThrottle {
	return &LoginThrottle{
		redis:  redis,
		limit:  5,
		window: time.Minute,
	}
}

func (t *LoginThrottle) key(ip string) string {
	return fmt.Sprintf("login:fail:%s", ip)
}

// Blocked reports whether the IP has exhausted its failed attempts for the
// current window. Redis errors fail open so an unavailable Redis never locks
// out logins.
func (t *LoginThrottle) Blocked(ctx context.Context, ip string) bool {
	if t.redis == nil {
		return false
	}
	v, err := t.redis.Get(ctx, t.key(ip))
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	return n >= t.limit
}

// RecordFailure counts a failed login attempt against the IP.
func (t *LoginThrottle) RecordFailure(ctx context.Context, ip string) {
	if t.redis == nil {
		return
	}
	if _, err := t.redis.Incr(ctx, t.key(ip), t.window); err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("failed to record login attempt")
	}
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, ip string) {
	if t.redis == nil {
		return
	}
	if err := t.redis.Delete(ctx, t.key(ip)); err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("failed to reset login throttle")
	}
}
