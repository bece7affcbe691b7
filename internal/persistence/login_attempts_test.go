package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginAttempts_DisabledIsNoop(t *testing.T) {
	var nilThrottle *LoginAttempts
	assert.False(t, nilThrottle.Locked(context.Background(), "a@example.com"))
	nilThrottle.RecordFailure(context.Background(), "a@example.com")

	off := NewLoginAttempts(nil, 5, time.Minute, zap.NewNop())
	assert.False(t, off.Locked(context.Background(), "a@example.com"))
}

func TestLoginAttempts_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	throttle := NewLoginAttempts(client, 1, time.Minute, zap.NewNop())
	throttle.RecordFailure(context.Background(), "a@example.com")
	assert.False(t, throttle.Locked(context.Background(), "a@example.com"))
}

func TestLoginAttempts_Redis(t *testing.T) {
	addr := os.Getenv("HRMS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HRMS_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	email := "Throttle-" + time.Now().Format("150405.000000") + "@example.com"
	throttle := NewLoginAttempts(client, 3, time.Minute, zap.NewNop())
	defer throttle.Reset(ctx, email)

	for i := 0; i < 2; i++ {
		throttle.RecordFailure(ctx, email)
	}
	assert.False(t, throttle.Locked(ctx, email))

	throttle.RecordFailure(ctx, email)
	assert.True(t, throttle.Locked(ctx, email))

	ttl, err := client.TTL(ctx, attemptKey(email)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	throttle.Reset(ctx, email)
	assert.False(t, throttle.Locked(ctx, email))
}
