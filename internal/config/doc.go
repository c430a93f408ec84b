// Package config handles loading and parsing aria's configuration
// file.
//
// # Overview
//
// This package reads aria's TOML configuration: Spotify application
// credentials, where to keep the OAuth token, and the knobs that shape
// polling and the UI. Loading happens once at startup and produces an
// immutable Config with every default already applied.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/aria/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Client credentials get one extra step: when the file doesn't supply
// them, the SPOTIFY_ID and SPOTIFY_SECRET environment variables are
// consulted, matching the convention in the Spotify developer
// documentation.
//
// # Default Values
//
//   - Config file: ~/.config/aria/config.toml
//   - Token file: ~/.config/aria/token.json
//   - Redirect URL: http://127.0.0.1:8888/callback
//   - Poll interval: 1 second
//   - Failure threshold: 3 consecutive failures
//   - Volume step: 3 percent
//   - Artwork width: 40 characters
//   - Pause on exit: true
//
// # TOML Format
//
// Example config.toml:
//
//	client_id = "your-app-client-id"
//	client_secret = "your-app-client-secret"
//	preferred_device = "Kitchen Speaker"
//	poll_interval = 1
//	volume_step = 3
//	art_width = 40
//	pause_on_exit = true
//	debug_log = "~/aria-debug.log"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Validation
//
// Numeric fields that make no sense (zero or negative intervals,
// steps, widths) silently fall back to their defaults rather than
// failing startup. Only unreadable files and invalid TOML are errors;
// a missing file is not.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	creds := spotify.Credentials{
//		ClientID:     cfg.ClientID,
//		ClientSecret: cfg.ClientSecret,
//		RedirectURL:  cfg.RedirectURL,
//		TokenPath:    cfg.TokenPath,
//	}
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Provide explicit config paths to avoid depending on the user's
//     home directory
//   - Override HOME (and SPOTIFY_ID / SPOTIFY_SECRET) with t.Setenv
//   - Use the Config struct directly rather than Load() for unit tests
package config
