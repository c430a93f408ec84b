package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/aria-tui/aria/internal/spotify"
)

// DefaultFailureThreshold is the number of consecutive poll failures
// after which the connection is reported as degraded.
const DefaultFailureThreshold = 3

// Snapshot represents the latest playback data available to the UI.
type Snapshot struct {
	Playing             spotify.NowPlaying
	HasPlayback         bool // false when nothing is playing anywhere
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
	Degraded            bool
}

// Store coordinates concurrent updates to the snapshot. The zero value
// is ready to use and degrades after DefaultFailureThreshold failures.
type Store struct {
	mu        sync.RWMutex
	threshold int
	snapshot  Snapshot
}

// NewStore returns a Store that flags the connection as degraded once
// threshold consecutive polls have failed. Values below 1 fall back to
// DefaultFailureThreshold.
func NewStore(threshold int) *Store {
	return &Store{threshold: threshold}
}

func (s *Store) effectiveThreshold() int {
	if s.threshold < 1 {
		return DefaultFailureThreshold
	}
	return s.threshold
}

// Update replaces the stored snapshot. When err is non-nil the previous
// playback data is kept but the error is recorded and the failure
// streak grows. LastUpdated marks the last successful refresh, so the
// age of the data on screen is always the age of real data.
func (s *Store) Update(playing *spotify.NowPlaying, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		s.snapshot.Degraded = s.snapshot.ConsecutiveFailures >= s.effectiveThreshold()
		return
	}

	if playing != nil {
		s.snapshot.Playing = *playing
		s.snapshot.HasPlayback = true
	} else {
		s.snapshot.HasPlayback = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Degraded = false
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
