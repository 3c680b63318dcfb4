// Package tracker persists per-job application status, a bounded log of
// status changes, and the set of bookmarked jobs. Status and bookmarks
// are independent: saving a job never touches its status and vice versa.
package tracker

import (
	"fmt"
	"time"

	"github.com/akarpov/jobtrack/internal/store"
)

// HistoryCap bounds the status-change log. The log is a sliding window of
// the most recent changes, not a full audit trail.
const HistoryCap = 50

// HistoryEntry records one status change, newest first in the stored log.
type HistoryEntry struct {
	JobID  string    `json:"jobId"`
	Status Status    `json:"status"`
	Date   time.Time `json:"date"`
}

// Store reads and writes tracking state through the injected KV.
type Store struct {
	kv  store.KV
	now func() time.Time
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Status returns the recorded status for the job, or StatusNotApplied
// when nothing was recorded or the stored payload is corrupt.
func (s *Store) Status(jobID string) Status {
	statuses := s.AllStatuses()
	if st, ok := statuses[jobID]; ok {
		return st
	}
	return StatusNotApplied
}

// AllStatuses returns the full job-id to status snapshot. Absent or
// corrupt data yields an empty map.
func (s *Store) AllStatuses() map[string]Status {
	statuses := make(map[string]Status)
	store.LoadJSON(s.kv, store.KeyStatus, &statuses)
	return statuses
}

// SetStatus records the new status and appends a history entry. The two
// writes succeed or fail together when the store supports atomic updates.
func (s *Store) SetStatus(jobID string, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}

	return store.Update(s.kv, func(kv store.KV) error {
		statuses := make(map[string]Status)
		store.LoadJSON(kv, store.KeyStatus, &statuses)
		statuses[jobID] = status

		if err := store.SaveJSON(kv, store.KeyStatus, statuses); err != nil {
			return fmt.Errorf("writing statuses: %w", err)
		}

		var history []HistoryEntry
		store.LoadJSON(kv, store.KeyStatusHistory, &history)

		history = append([]HistoryEntry{{JobID: jobID, Status: status, Date: s.now()}}, history...)
		if len(history) > HistoryCap {
			history = history[:HistoryCap]
		}

		if err := store.SaveJSON(kv, store.KeyStatusHistory, history); err != nil {
			return fmt.Errorf("writing status history: %w", err)
		}
		return nil
	})
}

// History returns status changes newest first, at most HistoryCap entries.
func (s *Store) History() []HistoryEntry {
	var history []HistoryEntry
	store.LoadJSON(s.kv, store.KeyStatusHistory, &history)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}
	return history
}

// Saved returns the bookmarked job ids in insertion order.
func (s *Store) Saved() []string {
	var saved []string
	store.LoadJSON(s.kv, store.KeySavedJobs, &saved)
	return saved
}

// IsSaved reports whether the job is bookmarked.
func (s *Store) IsSaved(jobID string) bool {
	for _, id := range s.Saved() {
		if id == jobID {
			return true
		}
	}
	return false
}

// ToggleSaved flips the bookmark for the job and returns the resulting
// set: inserted when absent, removed when present.
func (s *Store) ToggleSaved(jobID string) ([]string, error) {
	saved := s.Saved()

	next := make([]string, 0, len(saved)+1)
	removed := false
	for _, id := range saved {
		if id == jobID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, jobID)
	}

	if err := store.SaveJSON(s.kv, store.KeySavedJobs, next); err != nil {
		return nil, fmt.Errorf("writing saved jobs: %w", err)
	}
	return next, nil
}
