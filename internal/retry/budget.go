package retry

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/store"
)

// InitialRemaining is the number of re-record attempts left after the
// first take: 2 retries, 3 total attempts.
const InitialRemaining = 2

const budgetFileName = "retry_count.json"

// budgetState is the durable shape; the key name matches the one the
// backend operators already know from support tickets.
type budgetState struct {
	InterviewRetryCount int `json:"interview_retry_count"`
}

// Budget is a bounded retry counter with a durability requirement: a
// decrement is written to disk before control returns, so a mid-session
// restart never resets the count.
type Budget struct {
	remaining int
	path      string
}

// DefaultPath resolves the budget file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, budgetFileName), nil
}

// Load reads the persisted budget. A missing file means a fresh
// session; unreadable or out-of-range values fall back to the initial
// budget rather than failing the page.
func Load(path string) Budget {
	b := Budget{remaining: InitialRemaining, path: path}
	var state budgetState
	if err := store.ReadJSON(path, &state); err != nil {
		return b
	}
	if state.InterviewRetryCount < 0 || state.InterviewRetryCount > InitialRemaining {
		return b
	}
	b.remaining = state.InterviewRetryCount
	return b
}

func (b *Budget) Remaining() int {
	return b.remaining
}

func (b *Budget) CanRetry() bool {
	return b.remaining > 0
}

// Retry consumes one retry and persists the new count synchronously.
// At zero it is a no-op and reports false; the caller must not discard
// the current artifact in that case.
func (b *Budget) Retry() (bool, error) {
	if b.remaining <= 0 {
		return false, nil
	}
	next := b.remaining - 1
	if err := store.WriteJSON(b.path, budgetState{InterviewRetryCount: next}); err != nil {
		return false, err
	}
	b.remaining = next
	return true, nil
}

// Reset clears the persisted budget. Not reachable from the interview
// page; used by operators when a candidate is granted a fresh window.
func (b *Budget) Reset() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	b.remaining = InitialRemaining
	return nil
}
