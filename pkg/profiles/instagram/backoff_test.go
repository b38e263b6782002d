package instagram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoff_Schedule(t *testing.T) {
	require.Equal(t,
		[]time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second},
		DefaultBackoff.Schedule())

	fast := Backoff{MaxRetries: 2, Unit: time.Millisecond}
	require.Equal(t, []time.Duration{2 * time.Millisecond, 4 * time.Millisecond}, fast.Schedule())
}

func TestRetryMachine_Exhausts(t *testing.T) {
	m := newRetryMachine(DefaultBackoff)

	var waits []time.Duration
	for {
		wait, ok := m.throttled()
		if !ok {
			break
		}
		waits = append(waits, wait)
	}

	require.Equal(t, DefaultBackoff.Schedule(), waits)
	require.Equal(t, phaseExhausted, m.phase)
	require.Equal(t, 3, m.retries())

	// Terminal phases absorb further events.
	m.answered()
	require.Equal(t, phaseExhausted, m.phase)
}

func TestRetryMachine_Succeeds(t *testing.T) {
	m := newRetryMachine(DefaultBackoff)

	wait, ok := m.throttled()
	require.True(t, ok)
	require.Equal(t, 2*time.Second, wait)

	m.answered()
	require.Equal(t, phaseSucceeded, m.phase)
	require.Equal(t, "succeeded", m.phase.String())

	_, ok = m.throttled()
	require.False(t, ok)
	require.Equal(t, 1, m.retries())
}

func TestRetryMachine_ZeroRetries(t *testing.T) {
	m := newRetryMachine(Backoff{MaxRetries: 0, Unit: time.Second})

	_, ok := m.throttled()
	require.False(t, ok)
	require.Equal(t, phaseExhausted, m.phase)
}

func TestLoggingPageID(t *testing.T) {
	tests := []struct {
		body  string
		id    string
		found bool
	}{
		{`{"logging_page_id":"profilePage_1"}`, "profilePage_1", true},
		{`{"a":{"logging_page_id":"nested"},"logging_page_id":"profilePage_2"}`, "profilePage_2", true},
		{`{"logging_page_id":null}`, "", false},
		{`{"logging_page_id":""}`, "", false},
		{`[]`, "", false},
		{`not json`, "", false},
		{``, "", false},
	}
	for _, tt := range tests {
		id, found := loggingPageID([]byte(tt.body))
		require.Equal(t, tt.found, found, tt.body)
		require.Equal(t, tt.id, id, tt.body)
	}
}
