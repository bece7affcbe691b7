package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptPrefix = "login:fail:"

// LoginAttempts counts failed logins per email in Redis within a fixed window.
// Redis errors fail open: a throttle outage never blocks logins.
type LoginAttempts struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginAttempts builds the throttle. maxAttempts <= 0 disables it.
func NewLoginAttempts(client redis.Cmdable, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginAttempts {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginAttempts{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

func (l *LoginAttempts) enabled() bool {
	return l != nil && l.client != nil && l.maxAttempts > 0
}

func attemptKey(email string) string {
	return loginAttemptPrefix + strings.ToLower(email)
}

// Locked reports whether the email reached the failure limit in the current window.
func (l *LoginAttempts) Locked(ctx context.Context, email string) bool {
	if !l.enabled() {
		return false
	}
	count, err := l.client.Get(ctx, attemptKey(email)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("login throttle lookup failed", zap.Error(err))
		}
		return false
	}
	return count >= l.maxAttempts
}

// RecordFailure increments the failure counter, starting the window on the first failure.
func (l *LoginAttempts) RecordFailure(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	k := attemptKey(email)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("login throttle update failed", zap.Error(err))
		return
	}
	if incr.Val() == int64(l.maxAttempts) {
		l.logger.Info("login throttled", zap.Int("attempts", l.maxAttempts), zap.Duration("window", l.window))
	}
}

// Reset clears the counter after a successful login.
func (l *LoginAttempts) Reset(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	if err := l.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		l.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}
