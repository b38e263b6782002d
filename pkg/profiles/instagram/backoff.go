package instagram

import "time"

// Backoff is the retry policy for throttled account lookups. After the n-th
// throttled attempt (n counting from 0) the caller waits Unit * 2^(n+1), so
// with the defaults the waits are 2s, 4s and 8s.
type Backoff struct {
	// MaxRetries is how many times a throttled request is retried.
	MaxRetries int
	// Unit scales the exponential schedule.
	Unit time.Duration
}

// DefaultBackoff retries up to 3 times with 2s, 4s and 8s waits.
var DefaultBackoff = Backoff{MaxRetries: 3, Unit: time.Second} //nolint: gochecknoglobals

// Delay returns the wait after the given zero-based throttled attempt.
func (b Backoff) Delay(attempt int) time.Duration {
	return b.Unit << (attempt + 1)
}

// Schedule returns every wait the policy can produce, in order.
func (b Backoff) Schedule() []time.Duration {
	out := make([]time.Duration, 0, b.MaxRetries)
	for i := range b.MaxRetries {
		out = append(out, b.Delay(i))
	}

	return out
}

// retryPhase is the state of a retry machine.
type retryPhase int

const (
	phaseAttempting retryPhase = iota
	phaseSucceeded
	phaseExhausted
)

func (p retryPhase) String() string {
	switch p {
	case phaseAttempting:
		return "attempting"
	case phaseSucceeded:
		return "succeeded"
	case phaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// retryMachine tracks one lookup call. It starts in phaseAttempting with
// attempt 0; each throttled response either schedules a wait and bumps the
// attempt or moves to phaseExhausted. Any other response moves to
// phaseSucceeded. Both terminal phases absorb further events.
type retryMachine struct {
	policy  Backoff
	attempt int
	phase   retryPhase
}

func newRetryMachine(policy Backoff) *retryMachine {
	return &retryMachine{policy: policy}
}

// throttled records a throttled response. It returns the wait before the
// next attempt, or ok=false once retries are exhausted.
func (m *retryMachine) throttled() (wait time.Duration, ok bool) {
	if m.phase != phaseAttempting {
		return 0, false
	}
	if m.attempt >= m.policy.MaxRetries {
		m.phase = phaseExhausted

		return 0, false
	}

	wait = m.policy.Delay(m.attempt)
	m.attempt++

	return wait, true
}

// answered records a non-throttled response.
func (m *retryMachine) answered() {
	if m.phase == phaseAttempting {
		m.phase = phaseSucceeded
	}
}

// retries returns how many retries were scheduled so far.
func (m *retryMachine) retries() int { return m.attempt }
