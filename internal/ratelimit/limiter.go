package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/redisclient"
	"github.com/opentocoder/storefront/internal/util"
)

// LoginLimiter throttles login attempts per client address with a sliding
// window kept in Redis, so the limit holds across instances.
type LoginLimiter struct {
	redis       *redisclient.Client
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter creates a login limiter
func NewLoginLimiter(redis *redisclient.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:       redis,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      util.GetLogger(),
	}
}

// Allow records an attempt for the address and reports whether it may
// proceed, with a retry-after hint when blocked. Redis failures fail open:
// losing throttling briefly beats refusing all logins.
func (l *LoginLimiter) Allow(ctx context.Context, addr string) (bool, time.Duration) {
	allowed, retryAfter, err := l.redis.RecordLoginAttempt(ctx, addr, l.window, l.maxAttempts)
	if err != nil {
		l.logger.Warn("Login limiter unavailable, allowing attempt", zap.Error(err))
		return true, 0
	}
	if !allowed {
		util.LoginThrottledTotal.Inc()
	}
	return allowed, retryAfter
}

// Reset clears the window for an address, called after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, addr string) {
	if err := l.redis.ClearLoginAttempts(ctx, addr); err != nil {
		l.logger.Warn("Failed to clear login window", zap.Error(err))
	}
}
