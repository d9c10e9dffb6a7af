package auth

import (
	"testing"
	"time"
)

// limiterAt returns a limiter with a controllable clock.
func limiterAt(start time.Time) (*LoginLimiter, *time.Time) {
	now := start
	l := NewLoginLimiter()
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BlocksAfterMaxFailures(t *testing.T) {
	l, _ := limiterAt(time.Now())

	for i := 0; i < MaxLoginAttempts-1; i++ {
		if tripped := l.Fail("10.0.0.1"); tripped {
			t.Fatalf("blocked too early after %d failures", i+1)
		}
		if blocked, _ := l.Check("10.0.0.1"); blocked {
			t.Fatalf("source blocked after only %d failures", i+1)
		}
	}

	if tripped := l.Fail("10.0.0.1"); !tripped {
		t.Fatal("expected the 5th failure to trip the block")
	}

	blocked, retryAfter := l.Check("10.0.0.1")
	if !blocked {
		t.Fatal("expected source blocked")
	}
	if retryAfter <= 0 || retryAfter > BlockDuration {
		t.Errorf("unexpected retry-after %v", retryAfter)
	}
}

func TestLimiter_BlockExpires(t *testing.T) {
	l, now := limiterAt(time.Now())

	for i := 0; i < MaxLoginAttempts; i++ {
		l.Fail("10.0.0.1")
	}
	if blocked, _ := l.Check("10.0.0.1"); !blocked {
		t.Fatal("expected source blocked")
	}

	*now = now.Add(BlockDuration + time.Second)
	if blocked, _ := l.Check("10.0.0.1"); blocked {
		t.Error("expected block to expire")
	}

	// After expiry the counter starts over.
	if tripped := l.Fail("10.0.0.1"); tripped {
		t.Error("expected a fresh counter after expiry")
	}
}

func TestLimiter_SuccessClearsCounter(t *testing.T) {
	l, _ := limiterAt(time.Now())

	for i := 0; i < MaxLoginAttempts-1; i++ {
		l.Fail("10.0.0.1")
	}
	l.Reset("10.0.0.1")

	if tripped := l.Fail("10.0.0.1"); tripped {
		t.Error("expected counter cleared after success")
	}
}

func TestLimiter_SourcesAreIndependent(t *testing.T) {
	l, _ := limiterAt(time.Now())

	for i := 0; i < MaxLoginAttempts; i++ {
		l.Fail("10.0.0.1")
	}

	if blocked, _ := l.Check("10.0.0.2"); blocked {
		t.Error("an unrelated source must not be blocked")
	}
}
