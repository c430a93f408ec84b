// Package spotify is the playback facade over the Spotify Web API.
//
// # Overview
//
// This package owns every conversation with the streaming provider:
// catalog listing (playlists, saved albums, their tracks), playback
// state reads, and transport commands (play, pause, skip, volume,
// seek, device transfer). Everything above it, the poller and the UI,
// sees only the package's own value types and error taxonomy, never
// the provider's wire shapes or HTTP status codes.
//
// # Architecture
//
// The package is split across five files:
//
//   - types.go: Provider-neutral value types (Playlist, Album, Track,
//     Device, NowPlaying, Container)
//   - errors.go: The error taxonomy and the classifier that maps raw
//     API failures onto it
//   - client.go: The Provider interface and the Client implementation
//     backed by zmb3/spotify
//   - auth.go: OAuth bootstrap, token persistence, loopback callback
//     server
//   - doc.go: This file
//
// # Provider Interface
//
// Provider is the seam the rest of the program is written against:
//
//	type Provider interface {
//		Playlists(ctx context.Context) ([]Playlist, error)
//		Tracks(ctx context.Context, c Container) ([]Track, error)
//		NowPlaying(ctx context.Context) (*NowPlaying, error)
//		Play(ctx context.Context, trackURI string) error
//		// ...
//	}
//
// UI and poller tests substitute small fakes; only this package's own
// tests ever touch the real client type.
//
// # Error Taxonomy
//
// Every error leaving this package is classified into one of four
// kinds:
//
//   - KindNotAuthenticated: Credentials missing, token rejected (401).
//     The caller should stop issuing requests and tell the user to
//     re-authenticate.
//   - KindNoActiveDevice: A transport command had no device to land on
//     (404 from a player endpoint, or an empty device list).
//   - KindNotFound: A catalog object has disappeared (404 from a
//     catalog endpoint).
//   - KindTransient: Everything else, including rate limits (429),
//     5xx responses, and network failures. Safe to retry.
//
// Use KindOf to branch on a returned error; unclassified errors
// report KindTransient so callers always get a usable answer.
//
// # Device Resolution
//
// Play must name a device when none is active. The resolution order
// is:
//
//  1. The device the provider reports as active
//  2. A device whose name matches the configured preferred device,
//     case-insensitively
//  3. The first device listed
//
// If the device list is empty the command fails with
// KindNoActiveDevice before any playback request is made.
//
// # Nothing Playing
//
// NowPlaying returns (nil, nil) when the provider reports no current
// item, which it does both for a closed player (204 response) and for
// a session with no track loaded. Callers must treat a nil snapshot
// with a nil error as "nothing is playing", not as a failure.
//
// # Authentication
//
// Authenticate prefers a token stored on disk. When none exists (or
// it cannot be refreshed), it starts a loopback HTTP server on the
// configured redirect URL, prints the authorization URL to the
// terminal, and waits for the provider callback. The exchanged token
// is written back with 0600 permissions. This flow runs before the
// terminal UI takes over the screen.
//
// # Pagination
//
// Catalog listings follow the provider's offset pagination with pages
// of 50 until a short page arrives. Results are accumulated in memory;
// the catalog sizes this client deals with (hundreds of playlists,
// dozens of tracks per container) make that acceptable.
//
// # Thread Safety
//
// Client is safe for concurrent use. It holds no mutable state of its
// own and the underlying HTTP client handles concurrent requests.
//
// # Testing Considerations
//
// The classifier and the device resolution rule are pure functions and
// are tested directly. Code above this package should be tested
// against a fake Provider rather than a mocked HTTP layer.
package spotify
