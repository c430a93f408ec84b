package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything aria needs to reach the Spotify API and
// shape the UI. Values are resolved: paths are absolute, durations are
// real durations, and defaults are already applied.
type Config struct {
	ClientID        string
	ClientSecret    string
	RedirectURL     string
	TokenPath       string
	PreferredDevice string

	PollInterval     time.Duration
	FailureThreshold int
	VolumeStep       int
	ArtWidth         int
	PauseOnExit      bool

	DebugLog string
}

const (
	defaultConfigPath  = "~/.config/aria/config.toml"
	defaultTokenPath   = "~/.config/aria/token.json"
	defaultRedirectURL = "http://127.0.0.1:8888/callback"

	defaultPollInterval     = time.Second
	defaultFailureThreshold = 3
	defaultVolumeStep       = 3
	defaultArtWidth         = 40
)

// Load locates and parses the aria config, falling back to defaults
// when the file is missing. Client credentials absent from the file
// are read from SPOTIFY_ID and SPOTIFY_SECRET.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RedirectURL:      defaultRedirectURL,
		TokenPath:        mustExpand(defaultTokenPath),
		PollInterval:     defaultPollInterval,
		FailureThreshold: defaultFailureThreshold,
		VolumeStep:       defaultVolumeStep,
		ArtWidth:         defaultArtWidth,
		PauseOnExit:      true,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvCredentials(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ClientID         string `toml:"client_id"`
		ClientSecret     string `toml:"client_secret"`
		RedirectURL      string `toml:"redirect_url"`
		TokenPath        string `toml:"token_path"`
		PreferredDevice  string `toml:"preferred_device"`
		PollInterval     int    `toml:"poll_interval"`
		FailureThreshold int    `toml:"failure_threshold"`
		VolumeStep       int    `toml:"volume_step"`
		ArtWidth         int    `toml:"art_width"`
		PauseOnExit      *bool  `toml:"pause_on_exit"`
		DebugLog         string `toml:"debug_log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ClientID = strings.TrimSpace(raw.ClientID)
	cfg.ClientSecret = strings.TrimSpace(raw.ClientSecret)
	applyEnvCredentials(&cfg)

	if v := strings.TrimSpace(raw.RedirectURL); v != "" {
		cfg.RedirectURL = v
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		cfg.TokenPath = mustExpand(v)
	}
	cfg.PreferredDevice = strings.TrimSpace(raw.PreferredDevice)

	if raw.PollInterval >= 1 {
		cfg.PollInterval = time.Duration(raw.PollInterval) * time.Second
	}
	if raw.FailureThreshold >= 1 {
		cfg.FailureThreshold = raw.FailureThreshold
	}
	if raw.VolumeStep >= 1 {
		cfg.VolumeStep = raw.VolumeStep
	}
	if raw.ArtWidth >= 1 {
		cfg.ArtWidth = raw.ArtWidth
	}
	if raw.PauseOnExit != nil {
		cfg.PauseOnExit = *raw.PauseOnExit
	}
	if v := strings.TrimSpace(raw.DebugLog); v != "" {
		cfg.DebugLog = mustExpand(v)
	}

	return cfg, nil
}

// applyEnvCredentials fills missing client credentials from the
// environment variables the Spotify developer docs use.
func applyEnvCredentials(cfg *Config) {
	if cfg.ClientID == "" {
		cfg.ClientID = strings.TrimSpace(os.Getenv("SPOTIFY_ID"))
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = strings.TrimSpace(os.Getenv("SPOTIFY_SECRET"))
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
