package auth

import (
	"sync"
	"time"
)

const (
	// MaxLoginAttempts failed logins from one source trigger a block.
	MaxLoginAttempts = 5
	// BlockDuration is how long a blocked source stays locked out.
	BlockDuration = 15 * time.Minute
)

// LoginLimiter tracks failed login attempts per source address and locks a
// source out after too many failures. State is in-memory only; a restart
// clears it, which is acceptable for this brute-force brake.
type LoginLimiter struct {
	now func() time.Time // injectable for tests

	mu      sync.Mutex
	sources map[string]*sourceState
}

type sourceState struct {
	attempts     int
	blockedUntil time.Time
}

func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		now:     time.Now,
		sources: make(map[string]*sourceState),
	}
}

// Check reports whether the source is currently blocked and, if so, for how
// much longer. An expired block is cleared on sight.
func (l *LoginLimiter) Check(source string) (blocked bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.sources[source]
	if !ok || st.blockedUntil.IsZero() {
		return false, 0
	}

	remaining := st.blockedUntil.Sub(l.now())
	if remaining <= 0 {
		l.sources[source] = &sourceState{}
		return false, 0
	}
	return true, remaining
}

// Fail records a failed attempt, blocking the source once it reaches
// MaxLoginAttempts. It reports whether this failure tripped the block.
func (l *LoginLimiter) Fail(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.sources[source]
	if !ok {
		st = &sourceState{}
		l.sources[source] = st
	}

	st.attempts++
	if st.attempts >= MaxLoginAttempts {
		st.blockedUntil = l.now().Add(BlockDuration)
		return true
	}
	return false
}

// Reset clears the source's counter after a successful login.
func (l *LoginLimiter) Reset(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sources, source)
}
