package spotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
)

// Provider defines the catalog and transport operations the UI and
// poller depend on. It is implemented by *Client and by test fakes.
type Provider interface {
	Playlists(ctx context.Context) ([]Playlist, error)
	Albums(ctx context.Context) ([]Album, error)
	Tracks(ctx context.Context, c Container) ([]Track, error)
	NowPlaying(ctx context.Context) (*NowPlaying, error)
	Play(ctx context.Context, trackURI string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SetVolume(ctx context.Context, percent int) error
	Seek(ctx context.Context, position time.Duration) error
	Devices(ctx context.Context) ([]Device, error)
	SwitchDevice(ctx context.Context, deviceID string) error
}

// Ensure Client implements Provider at compile time.
var _ Provider = (*Client)(nil)

// Client is the playback facade over the Spotify Web API. All
// responses and failures are normalized into the package's value types
// and error taxonomy; callers never see provider-specific shapes.
type Client struct {
	api             *spotify.Client
	preferredDevice string
}

const pageLimit = 50

// NewClient wraps an authenticated Web API client. preferredDevice
// names the Connect device to target when none is active; empty picks
// the first device listed.
func NewClient(api *spotify.Client, preferredDevice string) *Client {
	return &Client{api: api, preferredDevice: strings.TrimSpace(preferredDevice)}
}

// Playlists lists the user's playlists, following pagination.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var out []Playlist
	offset := 0
	for {
		page, err := c.api.CurrentUsersPlaylists(ctx, spotify.Limit(pageLimit), spotify.Offset(offset))
		if err != nil {
			return nil, classify("list playlists", opCatalog, err)
		}
		for _, p := range page.Playlists {
			out = append(out, Playlist{
				ID:     string(p.ID),
				Name:   p.Name,
				Owner:  p.Owner.DisplayName,
				Total:  int(p.Tracks.Total),
				ArtURL: firstImageURL(p.Images),
			})
		}
		if len(page.Playlists) < pageLimit {
			return out, nil
		}
		offset += pageLimit
	}
}

// Albums lists the user's saved albums, following pagination.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var out []Album
	offset := 0
	for {
		page, err := c.api.CurrentUsersAlbums(ctx, spotify.Limit(pageLimit), spotify.Offset(offset))
		if err != nil {
			return nil, classify("list albums", opCatalog, err)
		}
		for _, a := range page.Albums {
			out = append(out, Album{
				ID:     string(a.ID),
				Name:   a.Name,
				Artist: joinArtists(a.Artists),
				ArtURL: firstImageURL(a.Images),
			})
		}
		if len(page.Albums) < pageLimit {
			return out, nil
		}
		offset += pageLimit
	}
}

// Tracks lists the tracks of a playlist or album, following
// pagination. Local files and episodes inside playlists are skipped.
func (c *Client) Tracks(ctx context.Context, cont Container) ([]Track, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	switch cont.Kind {
	case ContainerPlaylist:
		return c.playlistTracks(ctx, cont)
	case ContainerAlbum:
		return c.albumTracks(ctx, cont)
	default:
		return nil, fmt.Errorf("unknown container kind %d", cont.Kind)
	}
}

func (c *Client) playlistTracks(ctx context.Context, cont Container) ([]Track, error) {
	var out []Track
	offset := 0
	for {
		page, err := c.api.GetPlaylistItems(ctx, spotify.ID(cont.ID), spotify.Limit(pageLimit), spotify.Offset(offset))
		if err != nil {
			return nil, classify("list playlist tracks", opCatalog, err)
		}
		for _, item := range page.Items {
			t := item.Track.Track
			if t == nil {
				continue
			}
			out = append(out, Track{
				ID:       string(t.ID),
				URI:      string(t.URI),
				Title:    t.Name,
				Artist:   joinArtists(t.Artists),
				Album:    t.Album.Name,
				Duration: time.Duration(t.Duration) * time.Millisecond,
			})
		}
		if len(page.Items) < pageLimit {
			return out, nil
		}
		offset += pageLimit
	}
}

func (c *Client) albumTracks(ctx context.Context, cont Container) ([]Track, error) {
	var out []Track
	offset := 0
	for {
		page, err := c.api.GetAlbumTracks(ctx, spotify.ID(cont.ID), spotify.Limit(pageLimit), spotify.Offset(offset))
		if err != nil {
			return nil, classify("list album tracks", opCatalog, err)
		}
		for _, t := range page.Tracks {
			out = append(out, Track{
				ID:       string(t.ID),
				URI:      string(t.URI),
				Title:    t.Name,
				Artist:   joinArtists(t.Artists),
				Album:    cont.Name,
				Duration: time.Duration(t.Duration) * time.Millisecond,
			})
		}
		if len(page.Tracks) < pageLimit {
			return out, nil
		}
		offset += pageLimit
	}
}

// NowPlaying fetches the current playback state. A nil result with a
// nil error means nothing is playing anywhere.
func (c *Client) NowPlaying(ctx context.Context) (*NowPlaying, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	state, err := c.api.PlayerState(ctx)
	if err != nil {
		return nil, classify("now playing", opTransport, err)
	}
	if state == nil || state.Item == nil {
		return nil, nil
	}
	item := state.Item
	return &NowPlaying{
		TrackID:       string(item.ID),
		Title:         item.Name,
		Artist:        joinArtists(item.Artists),
		Album:         item.Album.Name,
		ArtURL:        firstImageURL(item.Album.Images),
		Position:      time.Duration(state.Progress) * time.Millisecond,
		Duration:      time.Duration(item.Duration) * time.Millisecond,
		Playing:       state.Playing,
		Volume:        int(state.Device.Volume),
		DeviceID:      string(state.Device.ID),
		DeviceName:    state.Device.Name,
		VolumeControl: state.Device.Volume > 0 && !state.Device.Restricted,
	}, nil
}

// Play starts playback of a single track, targeting the active device
// when there is one and otherwise resolving one via the preferred-name
// then first-listed rule.
func (c *Client) Play(ctx context.Context, trackURI string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	opts := &spotify.PlayOptions{URIs: []spotify.URI{spotify.URI(trackURI)}}

	devices, err := c.Devices(ctx)
	if err != nil {
		return err
	}
	dev, ok := chooseDevice(devices, c.preferredDevice)
	if !ok {
		return &Error{Kind: KindNoActiveDevice, Op: "play", Err: fmt.Errorf("no playback devices available")}
	}
	id := spotify.ID(dev.ID)
	opts.DeviceID = &id

	return classify("play", opTransport, c.api.PlayOpt(ctx, opts))
}

// Pause pauses playback on the active device.
func (c *Client) Pause(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return classify("pause", opTransport, c.api.Pause(ctx))
}

// Resume resumes playback on the active device.
func (c *Client) Resume(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return classify("resume", opTransport, c.api.Play(ctx))
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return classify("next", opTransport, c.api.Next(ctx))
}

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return classify("previous", opTransport, c.api.Previous(ctx))
}

// SetVolume sets the active device's volume percent, clamped to
// [0, 100].
func (c *Client) SetVolume(ctx context.Context, percent int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return classify("set volume", opTransport, c.api.Volume(ctx, percent))
}

// Seek moves the playback position of the current track.
func (c *Client) Seek(ctx context.Context, position time.Duration) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if position < 0 {
		position = 0
	}
	return classify("seek", opTransport, c.api.Seek(ctx, int(position/time.Millisecond)))
}

// Devices lists the user's Connect devices.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	devices, err := c.api.PlayerDevices(ctx)
	if err != nil {
		return nil, classify("list devices", opTransport, err)
	}
	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, Device{
			ID:     string(d.ID),
			Name:   d.Name,
			Type:   d.Type,
			Active: d.Active,
			Volume: int(d.Volume),
		})
	}
	return out, nil
}

// SwitchDevice transfers playback to the given device and ensures it
// is playing there.
func (c *Client) SwitchDevice(ctx context.Context, deviceID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return classify("switch device", opTransport, c.api.TransferPlayback(ctx, spotify.ID(deviceID), true))
}

// chooseDevice picks the playback target from a device list: the
// active device first, then a case-insensitive match on the preferred
// name, then the first listed.
func chooseDevice(devices []Device, preferred string) (Device, bool) {
	if len(devices) == 0 {
		return Device{}, false
	}
	for _, d := range devices {
		if d.Active {
			return d, true
		}
	}
	if preferred != "" {
		for _, d := range devices {
			if strings.EqualFold(d.Name, preferred) {
				return d, true
			}
		}
	}
	return devices[0], true
}

func joinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func firstImageURL(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
