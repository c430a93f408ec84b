package spotify

import "time"

// ContainerKind identifies which kind of track container a Container
// refers to.
type ContainerKind int

const (
	ContainerPlaylist ContainerKind = iota
	ContainerAlbum
)

// String returns a lowercase label for the kind.
func (k ContainerKind) String() string {
	switch k {
	case ContainerPlaylist:
		return "playlist"
	case ContainerAlbum:
		return "album"
	default:
		return "unknown"
	}
}

// Container identifies a playlist or album whose tracks can be listed.
type Container struct {
	Kind ContainerKind
	ID   string
	Name string
}

// Playlist is one entry in the user's playlist library.
type Playlist struct {
	ID     string
	Name   string
	Owner  string
	Total  int // number of tracks
	ArtURL string
}

// Container returns the playlist as a track container.
func (p Playlist) Container() Container {
	return Container{Kind: ContainerPlaylist, ID: p.ID, Name: p.Name}
}

// Album is one entry in the user's saved-album library.
type Album struct {
	ID     string
	Name   string
	Artist string
	ArtURL string
}

// Container returns the album as a track container.
func (a Album) Container() Container {
	return Container{Kind: ContainerAlbum, ID: a.ID, Name: a.Name}
}

// Track is a playable track inside a container.
type Track struct {
	ID       string
	URI      string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// Device is a Spotify Connect playback target.
type Device struct {
	ID     string
	Name   string
	Type   string
	Active bool
	Volume int
}

// NowPlaying is the playback state reported by the provider at one
// point in time. It is carried whole inside state.Snapshot and is
// never mutated field-by-field after construction.
type NowPlaying struct {
	TrackID    string
	Title      string
	Artist     string
	Album      string
	ArtURL     string
	Position   time.Duration
	Duration   time.Duration
	Playing    bool
	Volume     int
	DeviceID   string
	DeviceName string

	// VolumeControl reports whether the active device accepts volume
	// commands. Devices that expose no volume percent (or are
	// restricted) reject them.
	VolumeControl bool
}

// ProgressPercent returns playback progress in [0, 100].
func (n NowPlaying) ProgressPercent() float64 {
	if n.Duration <= 0 {
		return 0
	}
	p := float64(n.Position) / float64(n.Duration) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
