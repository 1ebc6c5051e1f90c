// Package usage tallies what a calculator session did: operations run and how
// they failed. Counts live in memory only and are reported when the session
// ends.
package usage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"keycalc/internal/calc"
)

// Counts holds run and failure totals.
type Counts struct {
	Runs     int64 `json:"runs"`
	Failures int64 `json:"failures"`
}

func (c *Counts) Add(failed bool) {
	c.Runs++
	if failed {
		c.Failures++
	}
}

// Stats is a snapshot of a session's counters.
type Stats struct {
	SessionID string            `json:"session_id"`
	Started   time.Time         `json:"started"`
	Total     Counts            `json:"total"`
	ByAction  map[string]Counts `json:"by_action"`
	ByError   map[string]int64  `json:"by_error"` // domain, computation, invalid_token
}

// Tracker records operations for one session.
type Tracker struct {
	mu    sync.Mutex
	stats Stats
}

// NewTracker creates a tracker for the given session.
func NewTracker(sessionID string) *Tracker {
	return &Tracker{
		stats: Stats{
			SessionID: sessionID,
			Started:   time.Now(),
			ByAction:  make(map[string]Counts),
			ByError:   make(map[string]int64),
		},
	}
}

// Track records one operation and its result.
func (t *Tracker) Track(action string, r calc.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	failed := r.Failed()
	t.stats.Total.Add(failed)

	entry := t.stats.ByAction[action]
	entry.Add(failed)
	t.stats.ByAction[action] = entry

	if kind := errorKind(r.Err); kind != "" {
		t.stats.ByError[kind]++
	}
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, calc.ErrDomain):
		return "domain"
	case errors.Is(err, calc.ErrComputation):
		return "computation"
	case errors.Is(err, calc.ErrInvalidToken):
		return "invalid_token"
	default:
		return "other"
	}
}

// Stats returns a copy of the counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.stats
	stats.ByAction = make(map[string]Counts, len(t.stats.ByAction))
	for k, v := range t.stats.ByAction {
		stats.ByAction[k] = v
	}
	stats.ByError = make(map[string]int64, len(t.stats.ByError))
	for k, v := range t.stats.ByError {
		stats.ByError[k] = v
	}
	return stats
}

// Summary renders the counters on one line, actions sorted by name.
func (s Stats) Summary() string {
	names := make([]string, 0, len(s.ByAction))
	for name := range s.ByAction {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		c := s.ByAction[name]
		parts = append(parts, fmt.Sprintf("%s=%d/%d", name, c.Runs, c.Failures))
	}
	return fmt.Sprintf("ops=%d failures=%d [%s]", s.Total.Runs, s.Total.Failures, strings.Join(parts, " "))
}
