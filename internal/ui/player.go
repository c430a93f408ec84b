package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handlePlayerKey processes keyboard input for the Player view.
func (m Model) handlePlayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p", " ":
		return m.togglePlayback()
	case "n":
		return m.transport(opNext)
	case "b":
		return m.transport(opPrevious)
	case "+", "=":
		return m.adjustVolume(1)
	case "-":
		return m.adjustVolume(-1)
	case ",":
		return m.seekBy(-seekStep)
	case ".":
		return m.seekBy(seekStep)
	}
	return m, nil
}

// togglePlayback pauses a playing track and resumes anything else.
func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if m.snapshot.HasPlayback && m.snapshot.Playing.Playing {
		return m.transport(opPause)
	}
	return m.transport(opResume)
}

// transport dispatches one fire-and-forget transport command from the
// Player. The displayed state changes when the next poll lands.
func (m Model) transport(op string) (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	provider := m.provider

	var fn func(context.Context) error
	switch op {
	case opPause:
		fn = provider.Pause
	case opResume:
		fn = provider.Resume
	case opNext:
		fn = provider.Next
	case opPrevious:
		fn = provider.Previous
	default:
		return m, nil
	}
	return m, commandCmd(m.ctx, ViewPlayer, op, fn)
}

// adjustVolume nudges the volume by the configured step. The target is
// applied to the local snapshot copy so repeated presses step from the
// latest target; the confirmed value arrives with the next poll.
func (m Model) adjustVolume(direction int) (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	if !m.snapshot.HasPlayback {
		m.flash = "nothing playing"
		return m, nil
	}
	if !m.snapshot.Playing.VolumeControl {
		m.flash = "device does not allow volume control"
		return m, nil
	}

	step := defaultVolumeStep
	if m.config != nil && m.config.VolumeStep > 0 {
		step = m.config.VolumeStep
	}
	target := m.snapshot.Playing.Volume + direction*step
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}
	m.snapshot.Playing.Volume = target

	provider := m.provider
	return m, commandCmd(m.ctx, ViewPlayer, opVolume, func(ctx context.Context) error {
		return provider.SetVolume(ctx, target)
	})
}

// seekBy jumps the position by delta, clamped to the track. The local
// position and its anchor move immediately so the progress display
// follows the jump before the poll confirms it.
func (m Model) seekBy(delta time.Duration) (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	if !m.snapshot.HasPlayback {
		m.flash = "nothing playing"
		return m, nil
	}

	target := m.playbackPosition() + delta
	if target < 0 {
		target = 0
	}
	if d := m.snapshot.Playing.Duration; d > 0 && target > d {
		target = d
	}
	m.snapshot.Playing.Position = target
	m.snapshot.LastUpdated = time.Now()

	provider := m.provider
	return m, commandCmd(m.ctx, ViewPlayer, opSeek, func(ctx context.Context) error {
		return provider.Seek(ctx, target)
	})
}

// renderPlayer renders the now-playing view: album art on the left,
// track and transport detail on the right.
func (m Model) renderPlayer() string {
	if !m.snapshot.HasPlayback {
		if m.snapshot.LastUpdated.IsZero() {
			return m.renderPlaceholder("Waiting for playback state...")
		}
		return m.renderPlaceholder("Nothing playing (press d to pick a device)")
	}

	info := m.renderPlayerInfo()

	if len(m.artGrid) == 0 {
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, info)
	}

	artBlock := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Render(strings.Join(m.artGrid, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Center, artBlock, "  ", info)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, body)
}

// renderPlayerInfo renders the textual half of the Player view.
func (m Model) renderPlayerInfo() string {
	styles := m.theme.Styles()
	playing := m.snapshot.Playing

	infoWidth := maxInt(24, m.width/2-8)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(playing.Title, infoWidth)))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render(truncate(playing.Artist, infoWidth)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate(playing.Album, infoWidth)))
	b.WriteString("\n\n")

	icon := ternary(playing.Playing, "▶", "⏸")
	position := formatDuration(m.playbackPosition())
	duration := formatDuration(playing.Duration)
	barWidth := maxInt(10, infoWidth-len(position)-len(duration)-6)
	b.WriteString(styles.Text.Render(icon + " " + position + " "))
	b.WriteString(m.renderProgressBar(barWidth))
	b.WriteString(styles.Text.Render(" " + duration))
	b.WriteString("\n\n")

	volume := fmt.Sprintf("Vol %d%%", playing.Volume)
	if !playing.VolumeControl {
		volume += " (fixed)"
	}
	device := playing.DeviceName
	if device == "" {
		device = playing.DeviceID
	}
	b.WriteString(styles.MutedText.Render(volume))
	if device != "" {
		b.WriteString(styles.FaintText.Render("  ·  "))
		b.WriteString(styles.MutedText.Render("on " + truncate(device, 24)))
	}

	return b.String()
}

// renderProgressBar renders playback progress as a fixed-width bar.
func (m Model) renderProgressBar(width int) string {
	styles := m.theme.Styles()
	playing := m.snapshot.Playing

	filled := 0
	if playing.Duration > 0 {
		filled = int(int64(width) * int64(m.playbackPosition()) / int64(playing.Duration))
		if filled > width {
			filled = width
		}
		if filled < 0 {
			filled = 0
		}
	}

	return styles.AccentText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", width-filled))
}
