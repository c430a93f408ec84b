// Package art turns album artwork into glyph grids for terminal
// display.
//
// # Overview
//
// Terminals have no pixels, so aria shows cover art as a block of
// characters whose visual weight tracks the image's brightness. This
// package owns both halves of that: fetching and decoding the artwork
// bytes, and rendering a decoded image into rows of glyphs.
//
// # Rendering
//
// Render partitions the image into one rectangular block per output
// cell, averages each block's luminance (ITU-R BT.709 weights, integer
// math), and indexes a fixed dense-to-sparse ramp:
//
//	@#S%?*+;:,.
//
// Dark blocks pick heavy glyphs, bright blocks pick light ones.
// Callers size the grid themselves; HeightFor supplies a row count
// that preserves the image's aspect ratio scaled by 0.55, because
// terminal cells are roughly half as wide as they are tall.
//
// Rendering is pure: the same image and target size always produce
// the same rows, and no global state is touched. Degenerate input
// (nil image, zero-size bounds) renders as a blank grid rather than
// failing, so a missing cover never takes the player view down with
// it.
//
// # Fetching
//
// Fetch downloads artwork over HTTP with a short timeout, decodes
// JPEG or PNG, and downscales to at most 512 pixels on the long side
// before handing the image to the renderer. Bytes that arrive but do
// not decode wrap ErrDecode so the caller can show a placeholder
// instead of a connection warning.
//
// # Caching
//
// There is none here. The UI keeps the last decoded image and
// re-renders it on resize; this package stays stateless.
package art
