package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLimiterStore() *rateLimiterStore {
	return &rateLimiterStore{limiters: make(map[string]*ipLimiter)}
}

func TestGetLimiterReusedPerIP(t *testing.T) {
	s := newLimiterStore()
	now := time.Now()

	a := s.getLimiter("1.2.3.4", now)
	b := s.getLimiter("1.2.3.4", now)
	c := s.getLimiter("5.6.7.8", now)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestGetLimiterEvictsIdleEntries(t *testing.T) {
	s := newLimiterStore()
	now := time.Now()

	s.getLimiter("1.2.3.4", now)
	s.getLimiter("5.6.7.8", now.Add(limiterIdleTTL+time.Minute))

	assert.NotContains(t, s.limiters, "1.2.3.4")
	assert.Contains(t, s.limiters, "5.6.7.8")
}

func TestGetLimiterRefreshOnUse(t *testing.T) {
	s := newLimiterStore()
	now := time.Now()

	s.getLimiter("1.2.3.4", now)
	// Seen again before the TTL elapses: the idle clock restarts.
	s.getLimiter("1.2.3.4", now.Add(limiterIdleTTL-time.Minute))
	s.getLimiter("5.6.7.8", now.Add(limiterIdleTTL+time.Minute))

	assert.Contains(t, s.limiters, "1.2.3.4")
}
