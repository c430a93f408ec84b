// Package state provides thread-safe playback state sharing for aria.
//
// # Overview
//
// This package implements the store through which the background
// poller hands playback snapshots to the UI. It is the single
// coordination point between the goroutine that talks to the Spotify
// API on a timer and the goroutine that renders frames.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ NowPlaying()   │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render frame   │
//	└────────────────┘            └─────────────────┘
//
// The Store mediates between these two independent goroutines,
// ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Independent snapshots (returned by value)
//
// # Update Semantics
//
// Update replaces the snapshot wholesale on success and preserves it
// on failure:
//
//	// Success: replace playback data, reset the failure streak
//	store.Update(playing, nil)
//	→ snapshot.Playing = *playing
//	→ snapshot.HasPlayback = true
//	→ snapshot.LastError = nil
//	→ snapshot.LastUpdated = now
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Nothing playing: success with no data
//	store.Update(nil, nil)
//	→ snapshot.HasPlayback = false
//
//	// Failure: keep old data, record the error, grow the streak
//	store.Update(nil, err)
//	→ snapshot.Playing = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A failed poll never erases the last good data. The UI keeps showing
// the most recent known track while the Degraded flag tells it to
// badge the connection.
//
// # Degradation
//
// One failed poll is noise; a streak is an outage. The store flips
// Snapshot.Degraded once ConsecutiveFailures reaches the threshold
// (DefaultFailureThreshold unless NewStore was given another value).
// The first success clears both the streak and the flag.
//
// LastUpdated moves only on success. During an outage it tells the
// user how old the data on screen actually is, and it anchors the
// UI's playback position extrapolation to the last real progress
// report.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock:
//
//   - Update(): write lock, exclusive
//   - Snapshot(): read lock, concurrent reads allowed
//
// The lock is held only while copying the struct, never across
// network calls or rendering.
//
// # Copying
//
// NowPlaying is a flat value type, so struct assignment is a deep
// copy. The one reference field, LastError, is re-wrapped on the way
// out so the caller never shares an error instance with the store;
// errors.Is and errors.As still see the original chain.
//
// # Usage Example
//
//	// Poller goroutine:
//	store := state.NewStore(3)
//	for {
//		playing, err := provider.NowPlaying(ctx)
//		store.Update(playing, err)
//		time.Sleep(interval)
//	}
//
//	// UI, on its tick:
//	snap := store.Snapshot()
//	renderPlayer(snap)
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	var s state.Store  // threshold defaults, safe from first use
//
// Snapshot() on a never-updated store returns a zero Snapshot with
// HasPlayback false, which renders as "nothing playing".
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Channels (mutex is simpler for single writer/multiple readers)
//   - Incremental field updates (whole-snapshot replacement cannot
//     tear)
//   - Versioning/history (only the latest state matters)
//
// This matches the scale of the problem: one poller, one reader, a
// snapshot measured in hundreds of bytes.
package state
