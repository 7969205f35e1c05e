package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitByClientIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(noContent())

	first := httptest.NewRequest(http.MethodPost, "/api/checkin", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/checkin", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request from same IP to be throttled, got %d", secondRec.Code)
	}
	if secondRec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	other := httptest.NewRequest(http.MethodPost, "/api/checkin", nil)
	other.RemoteAddr = "203.0.113.11:5555"
	otherRec := httptest.NewRecorder()
	limited.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusNoContent {
		t.Fatalf("expected a different IP to pass, got %d", otherRec.Code)
	}
}

func TestRateLimitWindowResets(t *testing.T) {
	rl := newRateLimiter(1, time.Minute, nil)
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if !rl.enforce(httptest.NewRecorder(), req) {
		t.Fatal("expected first request to pass")
	}
	if rl.enforce(httptest.NewRecorder(), req) {
		t.Fatal("expected second request to be limited")
	}
	now = now.Add(time.Minute + time.Second)
	if !rl.enforce(httptest.NewRecorder(), req) {
		t.Fatal("expected request after the window to pass")
	}
}

func TestRateLimitCustomKey(t *testing.T) {
	limited := RateLimit(1, time.Minute, WithKeyFunc(func(r *http.Request) string {
		return r.Header.Get("X-Kiosk")
	}))(noContent())

	for _, kiosk := range []string{"entrada-norte", "entrada-sur"} {
		req := httptest.NewRequest(http.MethodPost, "/api/checkin", nil)
		req.Header.Set("X-Kiosk", kiosk)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("kiosk %s: expected pass, got %d", kiosk, rec.Code)
		}
	}
}

func TestRateLimitSkip(t *testing.T) {
	limited := RateLimit(1, time.Minute, WithSkip(func(r *http.Request) bool {
		return r.URL.Path == "/api/checkin"
	}))(noContent())

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.10:4444"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}
	for i := 0; i < 3; i++ {
		if code := send("/api/checkin"); code != http.StatusNoContent {
			t.Fatalf("skipped request %d: expected pass, got %d", i+1, code)
		}
	}
	if code := send("/api/attendance/stats"); code != http.StatusNoContent {
		t.Fatalf("skipped requests must not use the bucket, got %d", code)
	}
	if code := send("/api/attendance/stats"); code != http.StatusTooManyRequests {
		t.Fatalf("expected the bucket to be enforced, got %d", code)
	}
}

func TestDurationSecondsRoundsUp(t *testing.T) {
	if got := durationSeconds(1500 * time.Millisecond); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := durationSeconds(-time.Second); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
