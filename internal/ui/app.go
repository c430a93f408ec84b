package ui

import (
	"context"
	"image"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aria-tui/aria/internal/art"
	"github.com/aria-tui/aria/internal/config"
	"github.com/aria-tui/aria/internal/prefs"
	"github.com/aria-tui/aria/internal/spotify"
	"github.com/aria-tui/aria/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewExplorer View = iota
	ViewTracks
	ViewPlayer
	ViewDevices
)

// frame is one entry on the navigation stack. Explorer is the
// permanent root; a Tracks frame remembers the container it was
// opened from so back-navigation and refetches stay anchored.
type frame struct {
	view      View
	container spotify.Container // Tracks frames only
	cursor    int
}

const (
	commandTimeout = 5 * time.Second
	fetchTimeout   = 10 * time.Second
	seekStep       = 10 * time.Second

	defaultVolumeStep = 3
	defaultArtWidth   = 40
)

const authFlash = "authentication required (restart aria to sign in)"

// Options configures the UI.
type Options struct {
	Context   context.Context
	Provider  spotify.Provider
	Store     *state.Store
	Config    *config.Config
	Prefs     prefs.Prefs
	PollTick  time.Duration
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	provider  spotify.Provider
	store     *state.Store
	config    *config.Config
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	stack    []frame
	width    int
	height   int
	ready    bool
	showHelp bool

	// Explorer state
	filter          string
	playlists       []spotify.Playlist
	albums          []spotify.Album
	playlistsLoaded bool
	albumsLoaded    bool

	// Tracks state for the top Tracks frame. Only one Tracks frame
	// can exist at a time, so the list lives on the model.
	tracks []spotify.Track

	// Devices state
	devices        []spotify.Device
	devicesLoading bool

	// Async bookkeeping: list fetches carry this generation counter
	// and stale results are discarded at apply time.
	fetchSeq int

	// Data state
	snapshot state.Snapshot
	flash    string // transient inline message for the current view
	authLost bool   // provider calls stop once authentication is gone

	// Album art, keyed by the snapshot's art URL
	artURL  string
	artImg  image.Image
	artGrid []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	filter := opts.Prefs.ExplorerFilter
	if filter != prefs.FilterAlbums {
		filter = prefs.FilterPlaylists
	}

	return Model{
		ctx:       ctx,
		provider:  opts.Provider,
		store:     opts.Store,
		config:    opts.Config,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		stack:     []frame{{view: ViewExplorer}},
		filter:    filter,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Populate the snapshot and the Explorer list immediately
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.provider != nil {
		cmds = append(cmds, fetchContainersCmd(m.ctx, m.provider, m.filter, m.fetchSeq))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.renderArtGrid()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case containersMsg:
		return m.applyContainers(msg)

	case tracksMsg:
		return m.applyTracks(msg)

	case devicesMsg:
		return m.applyDevices(msg)

	case commandMsg:
		return m.applyCommand(msg)

	case artMsg:
		return m.applyArt(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Global bindings run first, then
// the key falls through to the current view's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewPlayer):
		m.gotoPlayer()
		return m, nil

	case key.Matches(msg, m.keys.ViewDevices):
		return m.gotoDevices()

	case key.Matches(msg, m.keys.Back):
		m.popFrame()
		return m, nil
	}

	// View-specific keys
	switch m.current().view {
	case ViewExplorer:
		return m.handleExplorerKey(msg)
	case ViewTracks:
		return m.handleTracksKey(msg)
	case ViewPlayer:
		return m.handlePlayerKey(msg)
	case ViewDevices:
		return m.handleDevicesKey(msg)
	}

	return m, nil
}

// quit leaves the program, pausing playback first when configured.
func (m Model) quit() (tea.Model, tea.Cmd) {
	pauseOnExit := m.config == nil || m.config.PauseOnExit
	if pauseOnExit && !m.authLost && m.provider != nil &&
		m.snapshot.HasPlayback && m.snapshot.Playing.Playing {
		return m, tea.Sequence(pauseOnExitCmd(m.ctx, m.provider), tea.Quit)
	}
	return m, tea.Quit
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// Navigation stack

// current returns the top of the navigation stack. The stack is never
// empty; Explorer sits at the bottom.
func (m *Model) current() *frame {
	return &m.stack[len(m.stack)-1]
}

// pushFrame makes f the current view. Pushing the view kind already on
// top replaces it instead of stacking a duplicate.
func (m *Model) pushFrame(f frame) {
	m.flash = ""
	if m.current().view == f.view {
		m.stack[len(m.stack)-1] = f
		return
	}
	m.stack = append(m.stack, f)
}

// popFrame returns to the previous view. Explorer is the permanent
// root and ignores pops.
func (m *Model) popFrame() {
	if len(m.stack) <= 1 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.flash = ""
}

// removeFrames drops buried frames of the given view so Player and
// Devices behave as singletons on the stack.
func (m *Model) removeFrames(v View) {
	kept := make([]frame, 0, len(m.stack))
	for _, f := range m.stack {
		if f.view != v {
			kept = append(kept, f)
		}
	}
	m.stack = kept
}

// gotoPlayer brings up the Player view. No fetch happens; the Player
// renders whatever the current snapshot holds.
func (m *Model) gotoPlayer() {
	if m.current().view == ViewPlayer {
		return
	}
	m.removeFrames(ViewPlayer)
	m.pushFrame(frame{view: ViewPlayer})
}

// canCallProvider reports whether provider calls may be issued, and
// raises the auth flash when sign-in has been lost.
func (m *Model) canCallProvider() bool {
	if m.authLost {
		m.flash = authFlash
		return false
	}
	return m.provider != nil
}

// gotoDevices brings up the Devices view and refreshes the device
// list, refetching even when the view is already current.
func (m Model) gotoDevices() (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	if m.current().view != ViewDevices {
		m.removeFrames(ViewDevices)
		m.pushFrame(frame{view: ViewDevices})
	}
	m.devicesLoading = true
	return m, fetchDevicesCmd(m.ctx, m.provider, m.nextSeq())
}

// nextSeq advances the fetch generation. Results stamped with an older
// generation are ignored when they arrive.
func (m *Model) nextSeq() int {
	m.fetchSeq++
	return m.fetchSeq
}

func clampCursor(cursor, length int) int {
	if length <= 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// moveCursor applies a navigation key to the current frame's cursor,
// bounded to the list length. Movement on an empty list is a no-op.
func (m *Model) moveCursor(keyName string, length int) {
	if length == 0 {
		return
	}
	f := m.current()
	switch keyName {
	case "j", "down":
		if f.cursor < length-1 {
			f.cursor++
		}
	case "k", "up":
		if f.cursor > 0 {
			f.cursor--
		}
	case "g", "home":
		f.cursor = 0
	case "G", "end":
		f.cursor = length - 1
	}
}

// Message application

func (m Model) applySnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	if spotify.KindOf(snap.LastError) == spotify.KindNotAuthenticated {
		m.authLost = true
	}
	// A confirmed active device corrects any optimistic switch guess.
	if snap.HasPlayback && snap.Playing.DeviceID != "" {
		m.reconcileDevices(snap.Playing.DeviceID)
	}
	return m, m.refreshArt()
}

func (m Model) applyContainers(msg containersMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		return m, nil
	}
	if msg.err != nil {
		if spotify.KindOf(msg.err) == spotify.KindNotAuthenticated {
			m.authLost = true
		}
		m.flash = flashError(msg.err)
		return m, nil
	}
	if msg.filter == prefs.FilterAlbums {
		m.albums = msg.albums
		m.albumsLoaded = true
	} else {
		m.playlists = msg.playlists
		m.playlistsLoaded = true
	}
	if m.filter == msg.filter {
		m.stack[0].cursor = clampCursor(m.stack[0].cursor, m.explorerLen())
		m.flash = ""
	}
	return m, nil
}

func (m Model) applyTracks(msg tracksMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		return m, nil
	}

	switch m.current().view {
	case ViewExplorer:
		// Result of opening a container: enter Tracks only on success.
		if msg.err != nil {
			if spotify.KindOf(msg.err) == spotify.KindNotAuthenticated {
				m.authLost = true
			}
			m.flash = flashError(msg.err)
			return m, nil
		}
		m.tracks = msg.tracks
		m.pushFrame(frame{view: ViewTracks, container: msg.container})

	case ViewTracks:
		// Result of a refetch-in-place after a stale selection.
		if msg.err != nil {
			m.flash = flashError(msg.err)
			return m, nil
		}
		if msg.container.ID == m.current().container.ID {
			m.tracks = msg.tracks
			m.current().cursor = clampCursor(m.current().cursor, len(m.tracks))
			m.flash = ""
		}
	}
	// Results for a view no longer displayed are discarded.
	return m, nil
}

func (m Model) applyDevices(msg devicesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		return m, nil
	}
	m.devicesLoading = false
	if m.current().view != ViewDevices {
		return m, nil
	}
	if msg.err != nil {
		if spotify.KindOf(msg.err) == spotify.KindNotAuthenticated {
			m.authLost = true
		}
		m.flash = flashError(msg.err)
		return m, nil
	}
	m.devices = msg.devices
	m.flash = ""
	f := m.current()
	f.cursor = 0
	for i, d := range m.devices {
		if d.Active {
			f.cursor = i
			break
		}
	}
	return m, nil
}

func (m Model) applyCommand(msg commandMsg) (tea.Model, tea.Cmd) {
	if spotify.KindOf(msg.err) == spotify.KindNotAuthenticated {
		m.authLost = true
	}
	// Results belong to the view that issued the command; if the user
	// has moved on, the next poll reconciles the outcome instead.
	if m.current().view != msg.from {
		return m, nil
	}

	if msg.err == nil {
		m.flash = ""
		if msg.op == opPlay && m.current().view == ViewTracks {
			m.removeFrames(ViewPlayer)
			m.pushFrame(frame{view: ViewPlayer})
		}
		return m, nil
	}

	if msg.op == opPlay && spotify.KindOf(msg.err) == spotify.KindNotFound &&
		m.current().view == ViewTracks {
		// The selected track went away: drop the selection and
		// refresh the listing in place.
		m.flash = "track is gone, refreshing list"
		m.current().cursor = 0
		return m, fetchTracksCmd(m.ctx, m.provider, m.current().container, m.nextSeq())
	}

	m.flash = flashError(msg.err)
	return m, nil
}

func (m Model) applyArt(msg artMsg) (tea.Model, tea.Cmd) {
	if msg.url != m.artURL {
		return m, nil // art changed again while this fetch ran
	}
	if msg.err != nil {
		log.Printf("album art: %v", msg.err)
		m.artImg = nil
	} else {
		m.artImg = msg.img
	}
	m.renderArtGrid()
	return m, nil
}

// refreshArt starts an art fetch when the snapshot's art URL changes.
// The URL is the identity check; unchanged art is never re-decoded.
func (m *Model) refreshArt() tea.Cmd {
	url := ""
	if m.snapshot.HasPlayback {
		url = m.snapshot.Playing.ArtURL
	}
	if url == m.artURL {
		return nil
	}
	m.artURL = url
	m.artImg = nil
	m.artGrid = nil
	if url == "" {
		return nil
	}
	return fetchArtCmd(m.ctx, url)
}

// renderArtGrid recomputes the glyph grid for the current art image
// and terminal size. A missing or undecodable image yields a blank
// grid rather than an error.
func (m *Model) renderArtGrid() {
	if m.artURL == "" {
		m.artGrid = nil
		return
	}
	w := m.artWidth()
	m.artGrid = art.Render(m.artImg, w, art.HeightFor(m.artImg, w))
}

// artWidth is the glyph grid width: the configured width, bounded by
// the left half of the terminal.
func (m Model) artWidth() int {
	w := defaultArtWidth
	if m.config != nil && m.config.ArtWidth > 0 {
		w = m.config.ArtWidth
	}
	if m.width > 0 {
		w = minInt(w, maxInt(10, m.width/2-4))
	}
	return w
}

// reconcileDevices aligns the device list's active flags with the
// poll-confirmed active device.
func (m *Model) reconcileDevices(activeID string) {
	for i := range m.devices {
		m.devices[i].Active = m.devices[i].ID == activeID
	}
}

// playbackPosition extrapolates the poll-reported position while a
// track is playing so the progress display moves between polls.
func (m Model) playbackPosition() time.Duration {
	p := m.snapshot.Playing.Position
	if m.snapshot.HasPlayback && m.snapshot.Playing.Playing && !m.snapshot.LastUpdated.IsZero() {
		p += time.Since(m.snapshot.LastUpdated)
	}
	if d := m.snapshot.Playing.Duration; d > 0 && p > d {
		p = d
	}
	return p
}

// flashError renders a failed remote call as an inline message.
func flashError(err error) string {
	switch spotify.KindOf(err) {
	case spotify.KindNotAuthenticated:
		return authFlash
	case spotify.KindNoActiveDevice:
		return "no active device (press d to pick one)"
	case spotify.KindNotFound:
		return "not found on the remote catalog"
	default:
		if spotify.IsRestriction(err) {
			return "the device refused that command"
		}
		return err.Error()
	}
}

// renderMain renders the header, command bar, and the current view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.current().view {
	case ViewExplorer:
		return m.renderExplorer()
	case ViewTracks:
		return m.renderTracks()
	case ViewPlayer:
		return m.renderPlayer()
	case ViewDevices:
		return m.renderDevices()
	default:
		return ""
	}
}

// contentHeight is the rows left for the current view below the
// header and command bar.
func (m Model) contentHeight() int {
	return maxInt(1, m.height-2)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// containersMsg delivers the Explorer's playlist or album listing.
type containersMsg struct {
	seq       int
	filter    string
	playlists []spotify.Playlist
	albums    []spotify.Album
	err       error
}

// tracksMsg delivers the tracks of one container.
type tracksMsg struct {
	seq       int
	container spotify.Container
	tracks    []spotify.Track
	err       error
}

// devicesMsg delivers the available playback devices.
type devicesMsg struct {
	seq     int
	devices []spotify.Device
	err     error
}

// commandMsg reports a fire-and-forget transport command back to the
// view that issued it.
type commandMsg struct {
	from View
	op   string
	err  error
}

// Transport command names carried by commandMsg.
const (
	opPlay     = "play"
	opPause    = "pause"
	opResume   = "resume"
	opNext     = "next"
	opPrevious = "previous"
	opVolume   = "volume"
	opSeek     = "seek"
	opSwitch   = "switch device"
)

// artMsg delivers decoded album art for the URL it was fetched from.
type artMsg struct {
	url string
	img image.Image
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchContainersCmd(ctx context.Context, provider spotify.Provider, filter string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		msg := containersMsg{seq: seq, filter: filter}
		if filter == prefs.FilterAlbums {
			msg.albums, msg.err = provider.Albums(ctx)
		} else {
			msg.playlists, msg.err = provider.Playlists(ctx)
		}
		return msg
	}
}

func fetchTracksCmd(ctx context.Context, provider spotify.Provider, c spotify.Container, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		tracks, err := provider.Tracks(ctx, c)
		return tracksMsg{seq: seq, container: c, tracks: tracks, err: err}
	}
}

func fetchDevicesCmd(ctx context.Context, provider spotify.Provider, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		devices, err := provider.Devices(ctx)
		return devicesMsg{seq: seq, devices: devices, err: err}
	}
}

// commandCmd dispatches one transport command and reports the result
// to the issuing view. Truth beyond accept/reject arrives with the
// next poll.
func commandCmd(ctx context.Context, from View, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		err := fn(ctx)
		if err != nil {
			log.Printf("%s: %v", op, err)
		}
		return commandMsg{from: from, op: op, err: err}
	}
}

func fetchArtCmd(ctx context.Context, url string) tea.Cmd {
	return func() tea.Msg {
		img, err := art.Fetch(ctx, url)
		return artMsg{url: url, img: img, err: err}
	}
}

// pauseOnExitCmd issues a best-effort pause right before quitting.
func pauseOnExitCmd(ctx context.Context, provider spotify.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		if err := provider.Pause(ctx); err != nil {
			log.Printf("pause on exit: %v", err)
		}
		return nil
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
