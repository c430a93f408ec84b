package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aria-tui/aria/internal/config"
	"github.com/aria-tui/aria/internal/prefs"
	"github.com/aria-tui/aria/internal/spotify"
	"github.com/aria-tui/aria/internal/state"
	"github.com/aria-tui/aria/internal/ui"
)

// Options configure the aria application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/aria/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	ThemeName  string // overrides the persisted theme when set
}

// Run boots the aria TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		// The terminal belongs to the TUI; stray log writes would
		// corrupt the frame.
		log.SetOutput(io.Discard)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	if opts.ThemeName != "" {
		userPrefs.Theme = opts.ThemeName
	}

	client, err := spotify.Authenticate(ctx, spotify.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		TokenPath:    cfg.TokenPath,
	}, cfg.PreferredDevice)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	store := state.NewStore(cfg.FailureThreshold)

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval)

	// One synchronous refresh so the first frame has playback data.
	initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	_ = refresh(initCtx, store, client)
	cancel()

	uiOpts := ui.Options{
		Context:   ctx,
		Provider:  client,
		Store:     store,
		Config:    &cfg,
		Prefs:     userPrefs,
		PollTick:  interval,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
