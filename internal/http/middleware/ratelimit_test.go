package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("apply:a", 3, time.Minute), "request %d", i)
	}
	assert.False(t, limiter.Allow("apply:a", 3, time.Minute))
	assert.True(t, limiter.Allow("apply:b", 3, time.Minute), "keys are independent")
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter()

	assert.True(t, limiter.Allow("k", 1, 10*time.Millisecond))
	assert.False(t, limiter.Allow("k", 1, 10*time.Millisecond))
	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("k", 1, 10*time.Millisecond))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/jobs", nil)
	req.RemoteAddr = "10.0.0.1:4312"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
