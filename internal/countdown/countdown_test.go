package countdown

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{-5 * time.Second, "Time Expired"},
		{0, "Time Expired"},
		{500 * time.Millisecond, "0h 0m 0s"},
		{1 * time.Second, "0h 0m 1s"},
		{61 * time.Second, "0h 1m 1s"},
		{3600 * time.Second, "1h 0m 0s"},
		{3723 * time.Second, "1h 2m 3s"},
		{90061 * time.Second, "25h 1m 1s"},
	}

	for _, tc := range cases {
		if got := Format(tc.remaining); got != tc.want {
			t.Fatalf("Format(%v): expected %q, got %q", tc.remaining, tc.want, got)
		}
	}
}

func TestNewInertOnAbsentOrMalformedExpiry(t *testing.T) {
	for _, raw := range []string{"", "   ", "tomorrow", "2026-13-99T99:00:00Z"} {
		timer := New(raw)
		if timer.Active() {
			t.Fatalf("expected inert timer for %q", raw)
		}
		if ev := timer.Tick(time.Now()); ev != EventNone {
			t.Fatalf("inert timer emitted event %v for %q", ev, raw)
		}
	}
}

func TestTickExpiresOnceThenStops(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	timer := New(start.Add(10 * time.Second).Format(time.RFC3339))

	// Ticks 1..9 count down without events.
	for i := 1; i <= 9; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		if ev := timer.Tick(now); ev != EventNone {
			t.Fatalf("tick %d: unexpected event %v", i, ev)
		}
	}

	// Tick 10: remaining hits 0, expired fires exactly once.
	now := start.Add(10 * time.Second)
	if ev := timer.Tick(now); ev != EventExpired {
		t.Fatalf("expected EventExpired at tick 10, got %v", ev)
	}
	if !timer.Done() {
		t.Fatal("expected timer done after expiry")
	}
	for i := 11; i <= 13; i++ {
		if ev := timer.Tick(start.Add(time.Duration(i) * time.Second)); ev != EventNone {
			t.Fatalf("tick %d after expiry: unexpected event %v", i, ev)
		}
	}
}

func TestWarningFiresExactlyOnceInsideWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	timer := New(start.Add(301 * time.Second).Format(time.RFC3339))

	// remaining = 300s: inside (299s, 300s].
	if ev := timer.Tick(start.Add(1 * time.Second)); ev != EventWarning {
		t.Fatalf("expected EventWarning at remaining=300s, got %v", ev)
	}

	// Never again for the rest of the session.
	for i := 2; i <= 300; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		ev := timer.Tick(now)
		if ev == EventWarning {
			t.Fatalf("warning fired twice (tick %d)", i)
		}
		if i < 301 && ev == EventExpired {
			t.Fatalf("premature expiry at tick %d", i)
		}
	}
	if ev := timer.Tick(start.Add(301 * time.Second)); ev != EventExpired {
		t.Fatal("expected expiry at tick 301")
	}
}

func TestWarningSkippedWhenTicksJumpOverWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	timer := New(start.Add(301 * time.Second).Format(time.RFC3339))

	// Simulated throttling: the next tick lands past the window.
	if ev := timer.Tick(start.Add(3 * time.Second)); ev != EventNone {
		t.Fatalf("expected no event at remaining=298s, got %v", ev)
	}
}

func TestRemainingClampsToZero(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	timer := New(start.Format(time.RFC3339))
	if got := timer.Remaining(start.Add(time.Hour)); got != 0 {
		t.Fatalf("expected clamped remaining 0, got %v", got)
	}
}
