package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aria-tui/aria/internal/prefs"
	"github.com/aria-tui/aria/internal/spotify"
)

// handleExplorerKey processes keyboard input for the Explorer view.
func (m Model) handleExplorerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		return m.switchFilter(prefs.FilterAlbums)
	case "p":
		return m.switchFilter(prefs.FilterPlaylists)
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveCursor(msg.String(), m.explorerLen())
		return m, nil
	case "enter":
		return m.openSelectedContainer()
	}
	return m, nil
}

// switchFilter flips the Explorer between playlists and albums. The
// cursor resets, the choice persists, and the first visit to a filter
// fetches its list.
func (m Model) switchFilter(filter string) (tea.Model, tea.Cmd) {
	if m.filter == filter {
		return m, nil
	}
	m.filter = filter
	m.flash = ""
	m.stack[0].cursor = 0

	m.prefs.ExplorerFilter = filter
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.prefs)
	}

	if !m.filterLoaded(filter) && m.provider != nil {
		return m, fetchContainersCmd(m.ctx, m.provider, filter, m.nextSeq())
	}
	return m, nil
}

// openSelectedContainer fetches the selected container's tracks. The
// Tracks view is entered only once the fetch succeeds.
func (m Model) openSelectedContainer() (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	c, ok := m.selectedContainer()
	if !ok {
		return m, nil
	}
	return m, fetchTracksCmd(m.ctx, m.provider, c, m.nextSeq())
}

// selectedContainer resolves the Explorer cursor against the active
// filter's list.
func (m Model) selectedContainer() (spotify.Container, bool) {
	cursor := m.stack[0].cursor
	if m.filter == prefs.FilterAlbums {
		if cursor >= len(m.albums) {
			return spotify.Container{}, false
		}
		return m.albums[cursor].Container(), true
	}
	if cursor >= len(m.playlists) {
		return spotify.Container{}, false
	}
	return m.playlists[cursor].Container(), true
}

func (m Model) explorerLen() int {
	if m.filter == prefs.FilterAlbums {
		return len(m.albums)
	}
	return len(m.playlists)
}

func (m Model) filterLoaded(filter string) bool {
	if filter == prefs.FilterAlbums {
		return m.albumsLoaded
	}
	return m.playlistsLoaded
}

// renderExplorer renders the library listing for the active filter.
func (m Model) renderExplorer() string {
	length := m.explorerLen()

	if length == 0 {
		switch {
		case !m.filterLoaded(m.filter):
			return m.renderPlaceholder("Loading library...")
		case m.filter == prefs.FilterAlbums:
			return m.renderPlaceholder("No saved albums (press p for playlists)")
		default:
			return m.renderPlaceholder("No playlists (press a for albums)")
		}
	}

	var title string
	if m.filter == prefs.FilterAlbums {
		title = fmt.Sprintf("Albums (%d)", length)
	} else {
		title = fmt.Sprintf("Playlists (%d)", length)
	}

	lines := []string{m.renderListTitle(title), ""}

	cursor := m.stack[0].cursor
	visible := maxInt(1, m.contentHeight()-len(lines))
	start, end := listWindow(length, cursor, visible)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderExplorerRow(i, i == cursor))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderExplorerRow(index int, selected bool) string {
	if m.filter == prefs.FilterAlbums {
		a := m.albums[index]
		return m.renderListRow(a.Name, a.Artist, selected)
	}
	p := m.playlists[index]
	detail := fmt.Sprintf("%d tracks", p.Total)
	if p.Owner != "" {
		detail = fmt.Sprintf("%s · %s", p.Owner, detail)
	}
	return m.renderListRow(p.Name, detail, selected)
}
