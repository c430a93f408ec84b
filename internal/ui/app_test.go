package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aria-tui/aria/internal/prefs"
	"github.com/aria-tui/aria/internal/spotify"
	"github.com/aria-tui/aria/internal/state"
)

// fakeProvider serves canned catalog data and records every transport
// command it receives.
type fakeProvider struct {
	playlists []spotify.Playlist
	albums    []spotify.Album
	tracks    map[string][]spotify.Track
	devices   []spotify.Device

	tracksErr error
	playErr   error

	played   []string
	switched []string
	volumes  []int
	seeks    []time.Duration
	pauses   int
	resumes  int
	nexts    int
	prevs    int
}

func (f *fakeProvider) Playlists(context.Context) ([]spotify.Playlist, error) {
	return f.playlists, nil
}

func (f *fakeProvider) Albums(context.Context) ([]spotify.Album, error) {
	return f.albums, nil
}

func (f *fakeProvider) Tracks(_ context.Context, c spotify.Container) ([]spotify.Track, error) {
	if f.tracksErr != nil {
		return nil, f.tracksErr
	}
	return f.tracks[c.ID], nil
}

func (f *fakeProvider) NowPlaying(context.Context) (*spotify.NowPlaying, error) {
	return nil, nil
}

func (f *fakeProvider) Play(_ context.Context, uri string) error {
	f.played = append(f.played, uri)
	return f.playErr
}

func (f *fakeProvider) Pause(context.Context) error    { f.pauses++; return nil }
func (f *fakeProvider) Resume(context.Context) error   { f.resumes++; return nil }
func (f *fakeProvider) Next(context.Context) error     { f.nexts++; return nil }
func (f *fakeProvider) Previous(context.Context) error { f.prevs++; return nil }

func (f *fakeProvider) SetVolume(_ context.Context, percent int) error {
	f.volumes = append(f.volumes, percent)
	return nil
}

func (f *fakeProvider) Seek(_ context.Context, position time.Duration) error {
	f.seeks = append(f.seeks, position)
	return nil
}

func (f *fakeProvider) Devices(context.Context) ([]spotify.Device, error) {
	return f.devices, nil
}

func (f *fakeProvider) SwitchDevice(_ context.Context, id string) error {
	f.switched = append(f.switched, id)
	return nil
}

var _ spotify.Provider = (*fakeProvider)(nil)

func libraryProvider() *fakeProvider {
	return &fakeProvider{
		playlists: []spotify.Playlist{
			{ID: "pl1", Name: "Workout Mix", Owner: "me", Total: 2},
			{ID: "pl2", Name: "Chill", Owner: "me", Total: 1},
		},
		albums: []spotify.Album{
			{ID: "al1", Name: "Blue Train", Artist: "John Coltrane"},
		},
		tracks: map[string][]spotify.Track{
			"pl1": {
				{ID: "t1", URI: "spotify:track:t1", Title: "One", Artist: "A", Duration: 3 * time.Minute},
				{ID: "t2", URI: "spotify:track:t2", Title: "Two", Artist: "B", Duration: 2 * time.Minute},
			},
		},
		devices: []spotify.Device{
			{ID: "dev-a", Name: "Kitchen", Type: "Speaker", Active: true, Volume: 40},
			{ID: "dev-x", Name: "Laptop", Type: "Computer", Volume: 60},
		},
	}
}

// newTestModel builds a ready model with a sized window and the
// Explorer playlists already loaded.
func newTestModel(t *testing.T, provider *fakeProvider) Model {
	t.Helper()
	m := New(Options{
		Provider:  provider,
		Store:     state.NewStore(0),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = drive(t, m, containersMsg{filter: prefs.FilterPlaylists, playlists: provider.playlists})
	return m
}

// drive applies one message and keeps the concrete model type.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// press sends one key by name.
func press(t *testing.T, m Model, name string) (Model, tea.Cmd) {
	t.Helper()
	return drive(t, m, keyMsg(name))
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

// exec runs a command synchronously and feeds every resulting message
// back through Update, following batches and chained commands.
func exec(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = exec(t, m, c)
		}
		return m
	}
	m, next := drive(t, m, msg)
	return exec(t, m, next)
}

func playingSnapshot(title string, volume int) state.Snapshot {
	return state.Snapshot{
		Playing: spotify.NowPlaying{
			TrackID:       "t1",
			Title:         title,
			Artist:        "Artist",
			Album:         "Album",
			Position:      30 * time.Second,
			Duration:      3 * time.Minute,
			Playing:       true,
			Volume:        volume,
			DeviceID:      "dev-a",
			DeviceName:    "Kitchen",
			VolumeControl: true,
		},
		HasPlayback: true,
		LastUpdated: time.Now(),
	}
}

func pausedSnapshot(position time.Duration) state.Snapshot {
	snap := playingSnapshot("Song", 50)
	snap.Playing.Playing = false
	snap.Playing.Position = position
	return snap
}

func TestStackNeverEmpty(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	keys := []string{
		"backspace", "esc", "c", "backspace", "d", "esc", "esc", "esc",
		"c", "d", "c", "backspace", "backspace", "backspace", "j", "G", "g",
	}
	for _, k := range keys {
		m, _ = press(t, m, k)
		if len(m.stack) < 1 {
			t.Fatalf("stack emptied after key %q", k)
		}
		if m.stack[0].view != ViewExplorer {
			t.Fatalf("stack root is %v after key %q, want ViewExplorer", m.stack[0].view, k)
		}
	}

	if m.current().view != ViewExplorer {
		t.Fatalf("after draining backspaces view = %v, want ViewExplorer", m.current().view)
	}
}

func TestBackspaceAtRootIgnored(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	m, _ = press(t, m, "backspace")
	if got := len(m.stack); got != 1 {
		t.Fatalf("stack length = %d, want 1", got)
	}
	if m.current().view != ViewExplorer {
		t.Fatalf("view = %v, want ViewExplorer", m.current().view)
	}
}

func TestExplorerEnterOpensTracks(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatalf("enter on a playlist produced no fetch command")
	}
	m = exec(t, m, cmd)

	if m.current().view != ViewTracks {
		t.Fatalf("view = %v, want ViewTracks", m.current().view)
	}
	if m.current().container.Name != "Workout Mix" {
		t.Fatalf("container = %q, want %q", m.current().container.Name, "Workout Mix")
	}
	if m.current().cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.current().cursor)
	}
	if len(m.tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(m.tracks))
	}
}

func TestExplorerFetchFailureStaysInExplorer(t *testing.T) {
	provider := libraryProvider()
	provider.tracksErr = &spotify.Error{Kind: spotify.KindTransient, Op: "playlist tracks"}
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "enter")
	m = exec(t, m, cmd)

	if m.current().view != ViewExplorer {
		t.Fatalf("view = %v, want ViewExplorer after failed fetch", m.current().view)
	}
	if m.flash == "" {
		t.Fatalf("expected an inline error message")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t, libraryProvider()) // two playlists

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "j")
	}
	if got := m.stack[0].cursor; got != 1 {
		t.Fatalf("cursor after overshoot down = %d, want 1", got)
	}

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "k")
	}
	if got := m.stack[0].cursor; got != 0 {
		t.Fatalf("cursor after overshoot up = %d, want 0", got)
	}

	m, _ = press(t, m, "G")
	if got := m.stack[0].cursor; got != 1 {
		t.Fatalf("cursor after G = %d, want 1", got)
	}
	m, _ = press(t, m, "g")
	if got := m.stack[0].cursor; got != 0 {
		t.Fatalf("cursor after g = %d, want 0", got)
	}
}

func TestCursorOnEmptyList(t *testing.T) {
	provider := &fakeProvider{}
	m := New(Options{
		Provider:  provider,
		Store:     state.NewStore(0),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = drive(t, m, containersMsg{filter: prefs.FilterPlaylists})

	for _, k := range []string{"j", "k", "G", "g", "enter"} {
		m, _ = press(t, m, k)
	}
	if got := m.stack[0].cursor; got != 0 {
		t.Fatalf("cursor on empty list = %d, want 0", got)
	}
	if m.current().view != ViewExplorer {
		t.Fatalf("enter on empty list changed view to %v", m.current().view)
	}
}

func TestFilterSwitchResetsCursorAndPersists(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, _ = press(t, m, "j")
	if m.stack[0].cursor != 1 {
		t.Fatalf("setup: cursor = %d, want 1", m.stack[0].cursor)
	}

	m, cmd := press(t, m, "a")
	if cmd == nil {
		t.Fatalf("first switch to albums should fetch the list")
	}
	m = exec(t, m, cmd)

	if m.filter != prefs.FilterAlbums {
		t.Fatalf("filter = %q, want %q", m.filter, prefs.FilterAlbums)
	}
	if m.stack[0].cursor != 0 {
		t.Fatalf("cursor after filter switch = %d, want 0", m.stack[0].cursor)
	}
	if len(m.albums) != 1 {
		t.Fatalf("albums not loaded, len = %d", len(m.albums))
	}

	// Switching back reuses the already-loaded list
	m, cmd = press(t, m, "p")
	if cmd != nil {
		t.Fatalf("second switch refetched an already-loaded list")
	}
	if m.filter != prefs.FilterPlaylists {
		t.Fatalf("filter = %q, want %q", m.filter, prefs.FilterPlaylists)
	}

	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("Load prefs: %v", err)
	}
	if saved.ExplorerFilter != prefs.FilterPlaylists {
		t.Fatalf("persisted filter = %q, want %q", saved.ExplorerFilter, prefs.FilterPlaylists)
	}
}

func TestPlaySuccessEntersPlayer(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "enter")
	m = exec(t, m, cmd)
	m, cmd = press(t, m, "enter") // play the first track
	m = exec(t, m, cmd)

	if len(provider.played) != 1 || provider.played[0] != "spotify:track:t1" {
		t.Fatalf("played = %v, want [spotify:track:t1]", provider.played)
	}
	if m.current().view != ViewPlayer {
		t.Fatalf("view = %v, want ViewPlayer after accepted play", m.current().view)
	}
}

func TestPlayNotFoundRefetchesInPlace(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "enter")
	m = exec(t, m, cmd)
	m, _ = press(t, m, "j") // select the second track

	// The track disappears server-side: play rejects, refetch shrinks.
	provider.playErr = &spotify.Error{Kind: spotify.KindNotFound, Op: "play"}
	provider.tracks["pl1"] = provider.tracks["pl1"][:1]

	m, cmd = press(t, m, "enter")
	m = exec(t, m, cmd)

	if m.current().view != ViewTracks {
		t.Fatalf("view = %v, want ViewTracks", m.current().view)
	}
	if m.current().cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after dropped selection", m.current().cursor)
	}
	if len(m.tracks) != 1 {
		t.Fatalf("len(tracks) = %d, want 1 after refetch", len(m.tracks))
	}
}

func TestLateTracksResultDiscardedAfterViewChange(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "enter") // fetch starts
	m, _ = press(t, m, "c")        // user moves to Player before it lands
	m = exec(t, m, cmd)

	if m.current().view != ViewPlayer {
		t.Fatalf("view = %v, want ViewPlayer", m.current().view)
	}
	for _, f := range m.stack {
		if f.view == ViewTracks {
			t.Fatalf("late tracks result pushed a Tracks frame")
		}
	}
}

func TestStaleFetchGenerationDiscarded(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, first := press(t, m, "enter")
	m, second := press(t, m, "enter") // supersedes the first fetch

	staleMsg := first()
	m, _ = drive(t, m, staleMsg)
	if m.current().view != ViewExplorer {
		t.Fatalf("stale result applied: view = %v", m.current().view)
	}

	m = exec(t, m, second)
	if m.current().view != ViewTracks {
		t.Fatalf("current result dropped: view = %v", m.current().view)
	}
}

func TestAuthLossBlocksCommandsAndShowsBanner(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	snap := state.Snapshot{
		LastError:           &spotify.Error{Kind: spotify.KindNotAuthenticated, Op: "now playing"},
		ConsecutiveFailures: 1,
	}
	m, _ = drive(t, m, snapshotMsg(snap))
	if !m.authLost {
		t.Fatalf("authLost not set by NotAuthenticated poll error")
	}

	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("command issued after authentication loss")
	}
	if m.flash != authFlash {
		t.Fatalf("flash = %q, want %q", m.flash, authFlash)
	}

	if header := m.renderHeader(); !strings.Contains(header, "SIGNED OUT") {
		t.Fatalf("header %q missing signed-out banner", header)
	}
}

func TestDegradedHeaderKeepsLastKnownTrack(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	snap := playingSnapshot("Giant Steps", 50)
	snap.LastError = &spotify.Error{Kind: spotify.KindTransient, Op: "now playing"}
	snap.ConsecutiveFailures = 3
	snap.Degraded = true

	m, _ = drive(t, m, snapshotMsg(snap))
	header := m.renderHeader()

	if !strings.Contains(header, "DEGRADED") {
		t.Fatalf("header %q missing degraded indicator", header)
	}
	if !strings.Contains(header, "Giant Steps") {
		t.Fatalf("header %q lost the last-known track", header)
	}
}

func TestHelpOverlayConsumesKeys(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	m, _ = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help overlay not shown")
	}
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help overlay missing title")
	}

	m, _ = press(t, m, "j")
	if m.showHelp {
		t.Fatalf("help overlay still open after keypress")
	}
	if got := m.stack[0].cursor; got != 0 {
		t.Fatalf("cursor moved while help was open: %d", got)
	}
}

func TestThemeCyclePersists(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	m, _ = press(t, m, "T")
	if m.theme.Name != "Verdant" {
		t.Fatalf("theme = %q, want Verdant", m.theme.Name)
	}

	if _, err := os.Stat(m.prefsPath); err != nil {
		t.Fatalf("prefs not written: %v", err)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("Load prefs: %v", err)
	}
	if saved.Theme != "Verdant" {
		t.Fatalf("persisted theme = %q, want Verdant", saved.Theme)
	}
}

func TestArtFetchKeyedByURL(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	snap := playingSnapshot("Song", 50)
	snap.Playing.ArtURL = "https://img.example/a.jpg"

	m, cmd := drive(t, m, snapshotMsg(snap))
	if cmd == nil {
		t.Fatalf("new art URL did not start a fetch")
	}
	if m.artURL != snap.Playing.ArtURL {
		t.Fatalf("artURL = %q, want %q", m.artURL, snap.Playing.ArtURL)
	}

	// Same URL again: no refetch, no re-decode.
	m, cmd = drive(t, m, snapshotMsg(snap))
	if cmd != nil {
		t.Fatalf("unchanged art URL triggered a refetch")
	}
}

func TestQuitWithoutPlaybackQuitsDirectly(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("quit produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not produce tea.QuitMsg")
	}
}

func TestViewRendersLibrary(t *testing.T) {
	m := newTestModel(t, libraryProvider())

	view := m.View()
	if !strings.Contains(view, "Playlists (2)") {
		t.Fatalf("view missing playlist title:\n%s", view)
	}
	if !strings.Contains(view, "Workout Mix") {
		t.Fatalf("view missing playlist row:\n%s", view)
	}
}
