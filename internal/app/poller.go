package app

import (
	"context"
	"log"
	"time"

	"github.com/aria-tui/aria/internal/spotify"
	"github.com/aria-tui/aria/internal/state"
)

const defaultPollInterval = time.Second

// maxBackoff caps the poll interval while the API keeps failing.
const maxBackoff = 30 * time.Second

// StartPoller launches a background goroutine that refreshes the store
// at a fixed cadence, stretching the interval while polls keep
// failing. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, provider spotify.Provider, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			if !refresh(ctx, store, provider) {
				return
			}
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh polls playback state once and records the result. It reports
// false when polling should stop for good.
func refresh(ctx context.Context, store *state.Store, provider spotify.Provider) bool {
	playing, err := provider.NowPlaying(ctx)
	if ctx.Err() != nil {
		return false
	}
	store.Update(playing, err)
	if err == nil {
		return true
	}

	log.Printf("playback poll failed: %v", err)
	if spotify.KindOf(err) == spotify.KindNotAuthenticated {
		// Retrying with a dead token only burns rate limit. The UI
		// tells the user to re-authenticate.
		log.Printf("authentication lost, poller stopping")
		return false
	}
	return true
}

// calculateBackoff doubles the base interval once per consecutive
// failure, capped at maxBackoff. Zero failures means the base cadence.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
