package countdown

import (
	"fmt"
	"strings"
	"time"
)

// Warning window: the one-time "5 minutes left" notice fires on the
// single tick where remaining first lands in (299s, 300s]. With ticks
// at 1-second granularity a backgrounded/suspended process can skip
// the whole window; that is accepted behavior, not a bug.
const (
	warningWindowUpper = 300 * time.Second
	warningWindowLower = 299 * time.Second
)

type Event int

const (
	EventNone Event = iota
	EventWarning
	EventExpired
)

// Timer derives remaining session time from a fixed expiry timestamp.
// An absent or malformed expiry produces an inert timer: no countdown,
// no warning, no expiry action.
type Timer struct {
	expiry time.Time
	active bool
	warned bool
	done   bool
}

// New builds a timer from the session's raw access_expiry value.
// expiry == "" (absent) or unparseable input yields an inert timer.
func New(expiry string) Timer {
	raw := strings.TrimSpace(expiry)
	if raw == "" {
		return Timer{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Timer{}
	}
	return Timer{expiry: t, active: true}
}

// Active reports whether the timer counts down at all.
func (t *Timer) Active() bool {
	return t.active
}

// Done reports whether expiry has been reached and announced.
func (t *Timer) Done() bool {
	return t.done
}

// Remaining returns the clamped time left at now. Inert timers report 0.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if !t.active {
		return 0
	}
	remaining := t.expiry.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Tick evaluates one 1-second tick and returns at most one event.
// EventExpired is emitted exactly once; after it, the timer stops and
// every further tick returns EventNone. EventWarning is emitted at most
// once, only on a tick whose remaining time falls inside the window.
func (t *Timer) Tick(now time.Time) Event {
	if !t.active || t.done {
		return EventNone
	}

	remaining := t.Remaining(now)
	if remaining <= 0 {
		t.done = true
		return EventExpired
	}
	if !t.warned && remaining > warningWindowLower && remaining <= warningWindowUpper {
		t.warned = true
		return EventWarning
	}
	return EventNone
}

// Format renders remaining time for display. Zero or negative input
// renders exactly "Time Expired".
func Format(remaining time.Duration) string {
	if remaining <= 0 {
		return "Time Expired"
	}
	total := int(remaining / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
