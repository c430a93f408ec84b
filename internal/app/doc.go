// Package app provides the orchestration layer for the aria
// application.
//
// # Overview
//
// This package wires together configuration, authentication, polling,
// state management, and the UI to create the complete aria TUI
// experience. It serves as the composition root where all dependencies
// are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load aria configuration from ~/.config/aria/config.toml
//  2. Route debug logging to a file, or silence it
//  3. Load user preferences (theme, explorer filter)
//  4. Authenticate against the Spotify API (stored token or browser
//     flow)
//  5. Create shared state.Store for UI and poller coordination
//  6. Launch the background poller goroutine
//  7. Start the TUI and block until the user exits or the context
//     cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()           Read aria config
//	       ├─────> prefs.Load()            Read user preferences
//	       ├─────> spotify.Authenticate()  Build API client
//	       ├─────> state.NewStore()        Shared state container
//	       ├─────> StartPoller()           Launch background updates
//	       └─────> ui.Run()                Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> provider.NowPlaying()              │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs continuously in the background at a configurable
// interval (default: 1 second). On each cycle it fetches the current
// playback state and updates the shared store atomically. User input
// never waits on it: keystrokes are handled by the UI goroutine while
// the poll is in flight.
//
// Failures do not stop the loop; they stretch it. Each consecutive
// failure doubles the wait (capped at 30 seconds) so a dead network
// is not hammered at full cadence. One exception is authentication
// loss: once the API rejects the token there is no point retrying, so
// the poller exits and the UI shows a re-authentication notice.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Debug log file cannot be opened
//   - Authentication failure (missing credentials, refused browser
//     flow)
//
// Recoverable errors (recorded in the store, polling continues):
//   - Playback state fetch failures
//   - Network timeouts during polling
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/aria/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/aria/prefs.toml)
//   - PollEvery: Polling interval in seconds (default: config value)
//   - ThemeName: Theme override for this session
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	opts := app.Options{
//		ConfigPath: "", // Use default
//		PollEvery:  1,  // 1 second polling
//	}
//
//	if err := app.Run(ctx, opts); err != nil {
//		log.Fatalf("aria failed: %v", err)
//	}
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and
// focused. Business logic lives in domain packages (spotify, state,
// art, ui). The app package simply connects these pieces with sensible
// defaults for a single-user terminal client.
package app
