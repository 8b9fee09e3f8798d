package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRateLimiter(t *testing.T) {
	t.Run("rejects_after_burst", func(t *testing.T) {
		rl := NewRateLimiter(PerMinute(1, 2))
		defer rl.Stop()
		r := setupLimitedRouter(rl)

		for i := 0; i < 2; i++ {
			if rec := doRequest(r, http.MethodGet, "/test", nil); rec.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
			}
		}

		rec := doRequest(r, http.MethodGet, "/test", nil)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "RATE_LIMITED" {
			t.Errorf("expected RATE_LIMITED, got %s", code)
		}
		if got := rec.Header().Get("Retry-After"); got != "60" {
			t.Errorf("expected Retry-After 60, got %q", got)
		}
	})

	t.Run("limits_each_client_separately", func(t *testing.T) {
		rl := NewRateLimiter(PerMinute(1, 1))
		defer rl.Stop()
		r := setupLimitedRouter(rl)

		req := func(ip string) int {
			return doRequest(r, http.MethodGet, "/test", map[string]string{"X-Forwarded-For": ip}).Code
		}
		if req("10.0.0.1") != http.StatusOK || req("10.0.0.2") != http.StatusOK {
			t.Fatal("first request of each client should pass")
		}
		if req("10.0.0.1") != http.StatusTooManyRequests {
			t.Error("second request of the same client should be limited")
		}
		if rl.ClientCount() != 2 {
			t.Errorf("expected 2 clients, got %d", rl.ClientCount())
		}
	})

	t.Run("cleanup_drops_idle_clients", func(t *testing.T) {
		rl := NewRateLimiter(PerMinute(60, 10))
		defer rl.Stop()
		rl.limiter("10.0.0.1")

		rl.cleanup(time.Now())
		if rl.ClientCount() != 1 {
			t.Fatal("recent client should be kept")
		}
		rl.cleanup(time.Now().Add(rl.config.CleanupInterval*2 + time.Second))
		if rl.ClientCount() != 0 {
			t.Error("idle client should be dropped")
		}
	})
}
