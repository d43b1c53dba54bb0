package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := newRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"), "bucket refills over time")
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	rl := newRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("idle")
	now = now.Add(5 * time.Minute)
	rl.allow("active")
	now = now.Add(6 * time.Minute)

	rl.sweep()

	assert.NotContains(t, rl.limiters, "idle")
	assert.Contains(t, rl.limiters, "active")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", clientIP(r))
}
