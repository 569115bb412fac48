package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLimiter struct {
	budget int64
	err    error
	keys   []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (RateDecision, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return RateDecision{}, f.err
	}
	if f.budget <= 0 {
		return RateDecision{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil
	}
	f.budget--
	return RateDecision{Allowed: true, Remaining: f.budget}, nil
}

func newLimitedRouter(l RateLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/login", RateLimit(l, 2, logger.Discard()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postLogin(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w
}

func TestRateLimit_BlocksWhenBucketEmpty(t *testing.T) {
	limiter := &fakeLimiter{budget: 2}
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, postLogin(router).Code)
	w := postLogin(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = postLogin(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
	assert.Contains(t, limiter.keys[0], "rl:/login:")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	router := newLimitedRouter(&fakeLimiter{err: errors.New("redis down")})
	assert.Equal(t, http.StatusOK, postLogin(router).Code)
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	router := newLimitedRouter(nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, postLogin(router).Code)
	}
}
