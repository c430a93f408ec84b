package art

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/nfnt/resize"
)

// ErrDecode marks artwork bytes that arrived but could not be decoded.
// Callers show a placeholder instead of surfacing a connection error.
var ErrDecode = errors.New("undecodable artwork")

// maxDecodeDim caps fetched artwork before rendering. Glyph grids are
// at most a few hundred cells wide, so anything beyond this only
// burns CPU in the averaging loop.
const maxDecodeDim = 512

var fetchClient = &http.Client{Timeout: 5 * time.Second}

// Fetch downloads and decodes cover art, downscaling it to at most
// maxDecodeDim on the long side. Decode failures wrap ErrDecode;
// everything else is a plain fetch error.
func Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build artwork request: %w", err)
	}
	req.Header.Set("User-Agent", "aria/0.1")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return resize.Thumbnail(maxDecodeDim, maxDecodeDim, img, resize.Lanczos3), nil
}
