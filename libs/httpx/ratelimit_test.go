package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.RemoteAddr = addr
		rw := httptest.NewRecorder()
		h.ServeHTTP(rw, req)
		return rw.Code
	}

	if send("10.0.0.1:1234") != http.StatusOK || send("10.0.0.1:1234") != http.StatusOK {
		t.Fatal("requests under the limit were rejected")
	}
	if send("10.0.0.1:1234") != http.StatusTooManyRequests {
		t.Fatal("request over the limit was allowed")
	}
	// Another client has its own window.
	if send("10.0.0.2:1234") != http.StatusOK {
		t.Fatal("second client shares the first client's window")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	if !rl.allow("c1") {
		t.Fatal("first request rejected")
	}
	if rl.allow("c1") {
		t.Fatal("second request allowed inside the window")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.allow("c1") {
		t.Fatal("request rejected after the window reset")
	}
}
