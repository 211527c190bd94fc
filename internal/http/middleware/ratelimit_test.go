package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.7:1234"

	keyFn := KeyByUserOrIP()
	if got := keyFn(c); got != "ip:203.0.113.7" {
		t.Fatalf("ip key = %q", got)
	}
	c.Request.Header.Set(HeaderUserID, "alice")
	if got := keyFn(c); got != "user:alice" {
		t.Fatalf("user key = %q", got)
	}
}

func TestNewRateLimiter_BurstCoercionAndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByUserOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed, got %d", rl.burst)
	}
	lim := rl.getVisitor("k1")
	if got := rl.getVisitor("k1"); got != lim {
		t.Fatal("expected the same limiter to be reused")
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByUserOrIP())
	rl.ttl = time.Nanosecond

	rl.mu.Lock()
	rl.visitors["old"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-time.Hour)}
	rl.lookups = sweepEvery - 1
	rl.mu.Unlock()

	_ = rl.getVisitor("new")

	rl.mu.Lock()
	_, existsOld := rl.visitors["old"]
	_, existsNew := rl.visitors["new"]
	rl.mu.Unlock()
	if existsOld || !existsNew {
		t.Fatalf("sweep: old=%v new=%v", existsOld, existsNew)
	}
}

func TestRetryAfter(t *testing.T) {
	cases := []struct {
		rps  float64
		want string
	}{
		{10, "1"},
		{1, "1"},
		{0.25, "4"},
		{0, "60"},
	}
	for _, tc := range cases {
		if got := NewRateLimiter(tc.rps, 1, KeyByUserOrIP()).retryAfter(); got != tc.want {
			t.Fatalf("retryAfter(%v) = %q; want %q", tc.rps, got, tc.want)
		}
	}
}

func TestRateLimiter_Handler_AllowDenyAndBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1.0, 1, KeyByUserOrIP())

	r := gin.New()
	r.Use(RequestID(), rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w1.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req2.Header.Set(requestIDHeader, "rid-429")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusTooManyRequests || w2.Header().Get("Retry-After") != "1" {
		t.Fatalf("second request: %d retry=%q", w2.Code, w2.Header().Get("Retry-After"))
	}
	var body map[string]any
	if err := json.Unmarshal(w2.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["code"] != "too_many_requests" || body["request_id"] != "rid-429" {
		t.Fatalf("unexpected body: %v", body)
	}

	// A different user has its own bucket.
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req3.Header.Set(HeaderUserID, "bob")
	r.ServeHTTP(w3, req3)
	if w3.Code != http.StatusOK {
		t.Fatalf("other user should pass, got %d", w3.Code)
	}

	rb := gin.New()
	rb.Use(func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() }, rl.Handler())
	rb.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	w4 := httptest.NewRecorder()
	rb.ServeHTTP(w4, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w4.Code != http.StatusOK {
		t.Fatalf("bypass should pass, got %d", w4.Code)
	}
}
