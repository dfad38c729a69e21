package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    3,
		window:   time.Minute,
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied under limit", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("request over limit allowed")
	}

	// Other IPs are counted separately
	if !rl.Allow("5.6.7.8") {
		t.Fatal("separate IP denied")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    1,
		window:   time.Minute,
	}

	// Seed an old request outside the window
	rl.requests["1.2.3.4"] = []time.Time{time.Now().Add(-2 * time.Minute)}

	if !rl.Allow("1.2.3.4") {
		t.Fatal("expired request still counted")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    5,
		window:   time.Minute,
	}

	rl.requests["stale"] = []time.Time{time.Now().Add(-10 * time.Minute)}
	rl.requests["fresh"] = []time.Time{time.Now()}

	rl.cleanup()

	if _, ok := rl.requests["stale"]; ok {
		t.Fatal("stale IP not cleaned up")
	}
	if _, ok := rl.requests["fresh"]; !ok {
		t.Fatal("fresh IP cleaned up")
	}
}
