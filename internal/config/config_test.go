package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPOTIFY_ID", "")
	t.Setenv("SPOTIFY_SECRET", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RedirectURL != defaultRedirectURL {
		t.Fatalf("RedirectURL = %q, want %q", cfg.RedirectURL, defaultRedirectURL)
	}
	if cfg.PollInterval != time.Second {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, time.Second)
	}
	if cfg.FailureThreshold != defaultFailureThreshold {
		t.Fatalf("FailureThreshold = %d, want %d", cfg.FailureThreshold, defaultFailureThreshold)
	}
	if cfg.VolumeStep != defaultVolumeStep {
		t.Fatalf("VolumeStep = %d, want %d", cfg.VolumeStep, defaultVolumeStep)
	}
	if cfg.ArtWidth != defaultArtWidth {
		t.Fatalf("ArtWidth = %d, want %d", cfg.ArtWidth, defaultArtWidth)
	}
	if !cfg.PauseOnExit {
		t.Fatal("PauseOnExit = false, want true by default")
	}
	if !strings.HasPrefix(cfg.TokenPath, home) {
		t.Fatalf("TokenPath = %q, want it under HOME %q", cfg.TokenPath, home)
	}
	if cfg.ClientID != "" || cfg.ClientSecret != "" {
		t.Fatalf("credentials = %q/%q, want empty", cfg.ClientID, cfg.ClientSecret)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
client_id = "  abc123  "
client_secret = "  shhh  "
preferred_device = "  Kitchen Speaker  "
token_path = "  ~/tokens/aria.json  "
poll_interval = 2
failure_threshold = 5
volume_step = 10
art_width = 60
pause_on_exit = false
debug_log = "~/aria-debug.log"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "abc123" || cfg.ClientSecret != "shhh" {
		t.Fatalf("credentials = %q/%q, want trimmed values", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.PreferredDevice != "Kitchen Speaker" {
		t.Fatalf("PreferredDevice = %q, want %q", cfg.PreferredDevice, "Kitchen Speaker")
	}
	if want := filepath.Join(home, "tokens/aria.json"); cfg.TokenPath != want {
		t.Fatalf("TokenPath = %q, want %q", cfg.TokenPath, want)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.FailureThreshold != 5 {
		t.Fatalf("FailureThreshold = %d, want 5", cfg.FailureThreshold)
	}
	if cfg.VolumeStep != 10 {
		t.Fatalf("VolumeStep = %d, want 10", cfg.VolumeStep)
	}
	if cfg.ArtWidth != 60 {
		t.Fatalf("ArtWidth = %d, want 60", cfg.ArtWidth)
	}
	if cfg.PauseOnExit {
		t.Fatal("PauseOnExit = true, want false")
	}
	if !strings.HasPrefix(cfg.DebugLog, home) {
		t.Fatalf("DebugLog = %q, want it under HOME %q", cfg.DebugLog, home)
	}
}

func TestLoad_EnvCredentialFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPOTIFY_ID", "env-id")
	t.Setenv("SPOTIFY_SECRET", "env-secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`poll_interval = 1`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "env-id" || cfg.ClientSecret != "env-secret" {
		t.Fatalf("credentials = %q/%q, want env values", cfg.ClientID, cfg.ClientSecret)
	}
}

func TestLoad_FileCredentialsBeatEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPOTIFY_ID", "env-id")
	t.Setenv("SPOTIFY_SECRET", "env-secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
client_id = "file-id"
client_secret = "file-secret"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClientID != "file-id" || cfg.ClientSecret != "file-secret" {
		t.Fatalf("credentials = %q/%q, want file values", cfg.ClientID, cfg.ClientSecret)
	}
}

func TestLoad_InvalidValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
poll_interval = 0
failure_threshold = -2
volume_step = 0
art_width = -1
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
	if cfg.FailureThreshold != defaultFailureThreshold {
		t.Fatalf("FailureThreshold = %d, want %d", cfg.FailureThreshold, defaultFailureThreshold)
	}
	if cfg.VolumeStep != defaultVolumeStep {
		t.Fatalf("VolumeStep = %d, want %d", cfg.VolumeStep, defaultVolumeStep)
	}
	if cfg.ArtWidth != defaultArtWidth {
		t.Fatalf("ArtWidth = %d, want %d", cfg.ArtWidth, defaultArtWidth)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`client_id = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
