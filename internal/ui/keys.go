package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// View switching
	ViewPlayer  key.Binding
	ViewDevices key.Binding

	// Explorer actions
	FilterPlaylists key.Binding
	FilterAlbums    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding

	// Playback
	Toggle      key.Binding
	NextTrack   key.Binding
	PrevTrack   key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc"),
			key.WithHelp("bksp", "Back"),
		),

		// View switching
		ViewPlayer: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Player"),
		),
		ViewDevices: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Devices"),
		),

		// Explorer actions
		FilterPlaylists: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Playlists"),
		),
		FilterAlbums: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Albums"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / play"),
		),

		// Playback
		Toggle: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "Play/pause"),
		),
		NextTrack: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Previous track"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Volume down"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "Seek back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "Seek forward"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Top, k.Bottom, k.Select, k.Back},
		// Views
		{k.ViewPlayer, k.ViewDevices, k.FilterPlaylists, k.FilterAlbums},
		// Playback
		{k.Toggle, k.NextTrack, k.PrevTrack, k.VolumeUp, k.VolumeDown, k.SeekBack, k.SeekForward},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
