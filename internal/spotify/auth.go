package spotify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Credentials holds everything needed to obtain an authenticated API
// client: the app credentials, the loopback redirect URL registered
// for them, and where to persist the OAuth token between runs.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenPath    string
}

var authScopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopeUserLibraryRead,
}

// Authenticate returns a ready Client. A token stored at
// creds.TokenPath is reused when present; otherwise the user is sent
// through the browser authorization flow and the resulting token is
// saved for next time. This runs before the UI starts, so the
// authorization URL is printed straight to the terminal.
func Authenticate(ctx context.Context, creds Credentials, preferredDevice string) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, &Error{
			Kind: KindNotAuthenticated,
			Op:   "authenticate",
			Err:  fmt.Errorf("missing client credentials, set client_id and client_secret in the config file or SPOTIFY_ID and SPOTIFY_SECRET in the environment"),
		}
	}

	auth := spotifyauth.New(
		spotifyauth.WithRedirectURL(creds.RedirectURL),
		spotifyauth.WithScopes(authScopes...),
		spotifyauth.WithClientID(creds.ClientID),
		spotifyauth.WithClientSecret(creds.ClientSecret),
	)

	token, err := loadToken(creds.TokenPath)
	if err != nil {
		token, err = authorize(ctx, auth, creds.RedirectURL)
		if err != nil {
			return nil, &Error{Kind: KindNotAuthenticated, Op: "authenticate", Err: err}
		}
		if err := saveToken(creds.TokenPath, token); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
	}

	httpClient := auth.Client(ctx, token)
	// A hung request must not stall the poll loop indefinitely.
	httpClient.Timeout = 10 * time.Second

	api := spotify.New(httpClient)
	return NewClient(api, preferredDevice), nil
}

// authorize runs the one-shot browser flow: start a loopback server
// on the redirect URL, print the authorization URL, and wait for the
// provider to call back with a code we can exchange for a token.
func authorize(ctx context.Context, auth *spotifyauth.Authenticator, redirectURL string) (*oauth2.Token, error) {
	u, err := neturl.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect URL: %w", err)
	}
	callbackPath := u.Path
	if callbackPath == "" {
		callbackPath = "/"
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type result struct {
		token *oauth2.Token
		err   error
	}
	results := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.Token(r.Context(), state, r)
		if err != nil {
			http.Error(w, "Authentication failed.", http.StatusForbidden)
			results <- result{err: err}
			return
		}
		fmt.Fprintln(w, "Authentication complete. You can close this tab and return to the terminal.")
		results <- result{token: token}
	})

	srv := &http.Server{Addr: u.Host, Handler: mux}
	serveErrs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErrs <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "Open this URL in your browser to authorize aria:\n\n  %s\n\n", auth.AuthURL(state))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-serveErrs:
		return nil, fmt.Errorf("callback server: %w", err)
	case res := <-results:
		return res.token, res.err
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, fmt.Errorf("stored token is expired and cannot be refreshed")
	}
	return &token, nil
}

// saveToken writes the token with owner-only permissions since it
// grants account access.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
