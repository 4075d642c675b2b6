package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndReset(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Hour)
	key := "203.0.113.7"
	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	limiter.addFailure(key, now.Add(-2*time.Hour))
	limiter.addFailure(key, now.Add(-90*time.Minute))
	if limiter.tooManyRecent(key, now) {
		t.Fatal("expected old attempts to be pruned from active window")
	}

	limiter.addFailure(key, now.Add(-30*time.Minute))
	if limiter.tooManyRecent(key, now) {
		t.Fatal("expected one recent attempt to stay below limit 2")
	}
	limiter.addFailure(key, now.Add(-time.Minute))
	if !limiter.tooManyRecent(key, now) {
		t.Fatal("expected two recent attempts to hit limit 2")
	}
	if limiter.tooManyRecent("198.51.100.1", now) {
		t.Fatal("expected keys to be tracked independently")
	}

	limiter.reset(key)
	if limiter.tooManyRecent(key, now) {
		t.Fatal("expected no attempts after reset")
	}
}
