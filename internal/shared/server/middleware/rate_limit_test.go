package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(identity string, perMinute, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", identity)
		c.Next()
	})
	r.Use(RateLimit(perMinute, burst))
	r.POST("/api/v1/resumes/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	// 1/min refill, burst of 2: the third immediate request must be
	// rejected.
	r := limitedRouter("guest:test-guest", 1, 2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("request 3 expected 429, got %d", resp.Code)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", payload.Error.Code)
	}
}

func TestRateLimitBucketsPerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-Test-Identity"))
		c.Next()
	})
	r.Use(RateLimit(1, 1))
	r.POST("/api/v1/resumes/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func(identity string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
		req.Header.Set("X-Test-Identity", identity)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("user-a"); code != http.StatusOK {
		t.Fatalf("user-a first request expected 200, got %d", code)
	}
	if code := send("user-a"); code != http.StatusTooManyRequests {
		t.Fatalf("user-a second request expected 429, got %d", code)
	}
	// a different identity gets its own bucket
	if code := send("user-b"); code != http.StatusOK {
		t.Fatalf("user-b first request expected 200, got %d", code)
	}
}

func TestRateLimitDefaultsOnZeroConfig(t *testing.T) {
	r := limitedRouter("guest:test-guest", 0, 0)

	// perMinute<=0 falls back to 10, burst<=0 to 1: first request passes.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with default config, got %d", resp.Code)
	}
}
