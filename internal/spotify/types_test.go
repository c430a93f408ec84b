package spotify

import (
	"testing"
	"time"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		want     float64
	}{
		{"halfway", 90 * time.Second, 180 * time.Second, 50},
		{"start", 0, 180 * time.Second, 0},
		{"zero duration", 30 * time.Second, 0, 0},
		{"overshoot clamps", 200 * time.Second, 180 * time.Second, 100},
		{"negative clamps", -5 * time.Second, 180 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NowPlaying{Position: tt.position, Duration: tt.duration}
			if got := n.ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainers(t *testing.T) {
	p := Playlist{ID: "pl1", Name: "Morning Mix"}
	c := p.Container()
	if c.Kind != ContainerPlaylist || c.ID != "pl1" || c.Name != "Morning Mix" {
		t.Errorf("playlist container = %+v", c)
	}

	a := Album{ID: "al1", Name: "Blue Train", Artist: "John Coltrane"}
	c = a.Container()
	if c.Kind != ContainerAlbum || c.ID != "al1" || c.Name != "Blue Train" {
		t.Errorf("album container = %+v", c)
	}

	if got, want := ContainerPlaylist.String(), "playlist"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	if got, want := ContainerAlbum.String(), "album"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
