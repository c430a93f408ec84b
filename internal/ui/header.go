package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aria-tui/aria/internal/prefs"
	"github.com/aria-tui/aria/internal/spotify"
)

// renderHeader renders the status bar: logo, playback badge, track
// summary, and the transient flash slot for the current view.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.authLost {
		return m.renderAuthHeader(styles, bg)
	}
	if m.snapshot.LastUpdated.IsZero() {
		return m.renderConnectingHeader(styles, bg)
	}

	content := m.buildStatusContent(styles, bg)
	return styles.Header.Width(m.width).Render(content)
}

// renderAuthHeader shows the persistent signed-out banner. No further
// provider calls happen until the user re-authenticates.
func (m Model) renderAuthHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("aria", styles.Logo),
		bg.Render("SIGNED OUT", styles.DangerText.Bold(true)),
		bg.Render("restart aria to authenticate", styles.WarningText),
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderConnectingHeader shows the state before the first successful
// poll.
func (m Model) renderConnectingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	if m.snapshot.LastError != nil {
		parts := []string{
			bg.Render("aria", styles.Logo),
			bg.Render("SPOTIFY "+connectionLabel(m.snapshot.LastError), styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		}
		return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
	}

	return styles.Header.Width(m.width).Render(
		bg.Render("aria", styles.Logo) + sep +
			bg.Render("Connecting to Spotify...", styles.WarningText.Bold(true)),
	)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < 80
	sep := bg.Spaces(2)

	var parts []string

	// Logo
	parts = append(parts, bg.Render("aria", styles.Logo))

	// Playback badge carries its own background color
	status := m.playbackStatus()
	parts = append(parts, m.theme.Styles().StatusStyle(status).Render(strings.ToUpper(status)))

	// Track summary from the last-known snapshot. Degradation keeps
	// the previous data on display rather than blanking it.
	if m.snapshot.HasPlayback {
		playing := m.snapshot.Playing

		summary := playing.Title
		if playing.Artist != "" {
			summary += " · " + playing.Artist
		}
		limit := 50
		if compact {
			limit = 24
		}
		parts = append(parts, bg.Render(truncate(summary, limit), styles.Text))

		if !compact {
			clock := formatDuration(m.playbackPosition()) + "/" + formatDuration(playing.Duration)
			parts = append(parts, bg.Render(clock, styles.MutedText))
			parts = append(parts, bg.Render(fmt.Sprintf("Vol %d%%", playing.Volume), styles.MutedText))
		}
	}

	if m.snapshot.Degraded {
		parts = append(parts,
			bg.Render("last update", styles.FaintText)+bg.Space()+
				bg.Render(formatTimestamp(m.snapshot.LastUpdated), styles.WarningText))
	}

	// Transient flash for the current view
	if m.flash != "" {
		parts = append(parts,
			bg.Render(truncate(m.flash, maxInt(20, m.width/3)), styles.DangerText))
	}

	return strings.Join(parts, sep)
}

// playbackStatus summarizes the snapshot for the header badge.
func (m Model) playbackStatus() string {
	switch {
	case m.snapshot.Degraded:
		return "degraded"
	case !m.snapshot.HasPlayback:
		return "idle"
	case m.snapshot.Playing.Playing:
		return "playing"
	default:
		return "paused"
	}
}

// connectionLabel compresses a poll error into a short header label.
func connectionLabel(err error) string {
	if err == nil {
		return ""
	}

	switch spotify.KindOf(err) {
	case spotify.KindNotAuthenticated:
		return "AUTH"
	case spotify.KindNoActiveDevice:
		return "NO DEVICE"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "TIMEOUT"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return "OFFLINE"
	case strings.Contains(msg, "rate"):
		return "RATE LIMITED"
	default:
		return "ERROR"
	}
}

// formatTimestamp renders the age of the last successful update.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	age := time.Since(t)
	switch {
	case age < 5*time.Second:
		return "now"
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	default:
		return t.Format("15:04:05")
	}
}

// renderCommandBar renders the per-view command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses the alternate surface background
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.current().view {
	case ViewTracks:
		commands = []cmd{
			{"Enter", "Play"},
			{"j/k", "Navigate"},
			{"Bksp", "Back"},
			{"c", "Player"},
			{"d", "Devices"},
			{"?", "More"},
		}
	case ViewPlayer:
		commands = []cmd{
			{"p", ternary(m.snapshot.HasPlayback && m.snapshot.Playing.Playing, "Pause", "Play")},
			{"n/b", "Next/Prev"},
			{"+/-", "Volume"},
			{",/.", "Seek"},
			{"d", "Devices"},
			{"Bksp", "Back"},
			{"?", "More"},
		}
	case ViewDevices:
		commands = []cmd{
			{"Enter", "Switch"},
			{"j/k", "Navigate"},
			{"d", "Refresh"},
			{"Bksp", "Back"},
			{"?", "More"},
		}
	default: // ViewExplorer
		commands = []cmd{
			{"p/a", ternary(m.filter == prefs.FilterAlbums, "Albums", "Playlists")}, // shows current filter
			{"Enter", "Open"},
			{"j/k", "Navigate"},
			{"c", "Player"},
			{"d", "Devices"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}
