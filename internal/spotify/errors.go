package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Kind classifies provider failures into the small set the UI and
// poller branch on. Everything network-ish or rate-limited is
// Transient: safe to retry on the next poll or the next command.
type Kind int

const (
	KindTransient Kind = iota
	KindNotAuthenticated
	KindNoActiveDevice
	KindNotFound
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not authenticated"
	case KindNoActiveDevice:
		return "no active device"
	case KindNotFound:
		return "not found"
	default:
		return "transient"
	}
}

// Error wraps a provider failure with its classification and the
// operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err. Unclassified errors are
// treated as Transient so callers retry rather than fail hard.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindTransient
}

// opClass distinguishes catalog lookups from transport commands: a 404
// means a stale id on the former and a missing playback session on the
// latter.
type opClass int

const (
	opCatalog opClass = iota
	opTransport
)

// classify normalizes an error from the Spotify Web API client into an
// *Error. A nil err maps to nil.
func classify(op string, class opClass, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: classifyKind(class, err), Op: op, Err: err}
}

func classifyKind(class opClass, err error) Kind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var apiErr spotify.Error
	if !errors.As(err, &apiErr) {
		// No HTTP status to go on: DNS failures, refused connections,
		// timeouts, body read errors.
		return KindTransient
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return KindNotAuthenticated
	case http.StatusForbidden:
		// Restriction violations (volume control disallowed, premium
		// required for a command). The message is preserved for inline
		// display; the next poll may well succeed.
		return KindTransient
	case http.StatusNotFound:
		if class == opTransport {
			// Player endpoints answer 404 when no device has an active
			// playback session.
			return KindNoActiveDevice
		}
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindTransient
	default:
		return KindTransient
	}
}

// IsRestriction reports whether err is a provider restriction refusal,
// such as volume control being disallowed on the active device.
func IsRestriction(err error) bool {
	var apiErr spotify.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status != http.StatusForbidden {
		return false
	}
	return strings.Contains(strings.ToUpper(apiErr.Message), "VOLUME_CONTROL_DISALLOW") ||
		strings.Contains(apiErr.Message, "Restriction violated")
}
