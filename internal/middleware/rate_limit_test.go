package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	now := time.Now()
	limiter := NewIPRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("10.0.0.1"))
	require.True(t, limiter.Allow("10.0.0.1"))
	require.False(t, limiter.Allow("10.0.0.1"))

	// buckets are per ip
	require.True(t, limiter.Allow("10.0.0.2"))

	// one token refills after a second
	now = now.Add(time.Second)
	require.True(t, limiter.Allow("10.0.0.1"))
	require.False(t, limiter.Allow("10.0.0.1"))
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Now()
	limiter := NewIPRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	require.Len(t, limiter.visitors, 1)

	now = now.Add(limiterIdleTTL + time.Minute)
	limiter.Allow("10.0.0.2")
	require.Len(t, limiter.visitors, 1)
	require.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestNewIPRateLimiter_MinimumBurst(t *testing.T) {
	require.Equal(t, 1, NewIPRateLimiter(1, 0).burst)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Post("/login", RateLimit(NewIPRateLimiter(0.001, 1), testLogger()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
