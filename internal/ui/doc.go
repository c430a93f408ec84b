// Package ui provides the terminal user interface for aria.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program: a single Model owns all mutable view
// state, and every input arrives as a message into one Update function.
// Keypresses, poll ticks, fetch results, command results, and decoded
// album art are all messages; exactly one is processed per render
// pass, so the screen always reflects a consistent state and a slow
// network call can never delay a keypress.
//
// # View Stack
//
// Four views exist: Explorer (playlists/albums of the library), Tracks
// (contents of one opened container), Player (now playing with glyph
// album art), and Devices (playback targets). They live on a
// navigation stack of frames. Explorer is the permanent root and the
// stack is never empty: Backspace pops one frame and is ignored at the
// root. Each frame carries its own selection cursor, clamped to the
// list it indexes; Tracks frames also remember the container they were
// opened from. Player and Devices are singletons on the stack, so
// bouncing between them cannot grow it without bound.
//
// # Data Flow
//
//	keyboard ──► Update ──► provider commands (tea.Cmd goroutines)
//	                ▲                 │
//	    tick (1s)   │                 ▼
//	state.Store ──► snapshotMsg   commandMsg / tracksMsg / devicesMsg
//
// The background poller (internal/app) writes playback state into
// state.Store; on every tick the UI reads a cheap snapshot copy. No
// network call ever runs on the update loop.
//
// # Command Reconciliation
//
// Transport commands (play, pause, skip, volume, seek, device switch)
// are fire-and-forget: Update dispatches them as tea.Cmds and moves
// on. The accept/reject result lands in the issuing view's transient
// flash slot; the confirmed state arrives with the next poll. Volume
// and seek adjust the local snapshot copy immediately so repeated
// presses step from the latest target, and a device switch marks the
// chosen device active optimistically; the next snapshot corrects any
// guess the provider rejected.
//
// # Stale Results
//
// List fetches are stamped with a generation counter and checked at
// apply time, so a late playlist listing cannot clobber a newer one.
// Results addressed to a view the user has left are discarded. Album
// art is keyed by URL: the grid is recomputed only when the now
// playing art URL changes, and a fetch that resolves after the track
// changed is dropped.
//
// # Error Display
//
// Remote failures surface as a short inline message in the header and
// never change the view. The message clears on the next success or on
// any view change. Three failures in a row flip the snapshot to
// degraded: the header shows a DEGRADED badge and the age of the last
// good update while the previous track data stays on screen. A lost
// authentication stops all provider traffic and pins a SIGNED OUT
// banner until restart.
//
// # Theming
//
// Two lipgloss themes ship (Dracula, Verdant); T cycles and persists
// the choice through internal/prefs. All chrome is drawn with BgStyle
// helpers so styled segments keep an unbroken background color.
package ui
