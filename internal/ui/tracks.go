package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleTracksKey processes keyboard input for the Tracks view.
func (m Model) handleTracksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveCursor(msg.String(), len(m.tracks))
		return m, nil
	case "enter":
		return m.playSelectedTrack()
	}
	return m, nil
}

// playSelectedTrack asks the provider to start the selected track.
// The Player view is entered when the command is accepted; a stale
// track triggers a refetch instead.
func (m Model) playSelectedTrack() (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	f := m.current()
	if len(m.tracks) == 0 || f.cursor >= len(m.tracks) {
		return m, nil
	}
	uri := m.tracks[f.cursor].URI
	provider := m.provider
	return m, commandCmd(m.ctx, ViewTracks, opPlay, func(ctx context.Context) error {
		return provider.Play(ctx, uri)
	})
}

// renderTracks renders the track listing of the opened container.
func (m Model) renderTracks() string {
	f := m.current()

	if len(m.tracks) == 0 {
		return m.renderPlaceholder(fmt.Sprintf("No tracks in %s", f.container.Name))
	}

	title := fmt.Sprintf("%s · %d tracks", f.container.Name, len(m.tracks))
	lines := []string{m.renderListTitle(title), ""}

	visible := maxInt(1, m.contentHeight()-len(lines))
	start, end := listWindow(len(m.tracks), f.cursor, visible)
	for i := start; i < end; i++ {
		t := m.tracks[i]
		name := fmt.Sprintf("%2d  %s", i+1, t.Title)
		detail := fmt.Sprintf("%s · %s", t.Artist, formatDuration(t.Duration))
		lines = append(lines, m.renderListRow(name, detail, i == f.cursor))
	}

	return strings.Join(lines, "\n")
}
