package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxImageBytes caps a thumbnail download; anything larger is not a
// thumbnail and is treated as unfetchable.
const maxImageBytes = 8 << 20

// ErrFetchFailed indicates a thumbnail could not be downloaded.
var ErrFetchFailed = errors.New("image fetch failed")

// ImageFetcher downloads thumbnail images with a bounded timeout. A
// failed or slow fetch is reported as an error for the one item, never
// as a fatal condition.
type ImageFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewImageFetcher creates a fetcher whose requests time out after the
// given duration.
func NewImageFetcher(timeout time.Duration) *ImageFetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ImageFetcher{
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "image-fetcher"),
	}
}

// Fetch downloads the image at url and returns its raw bytes.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty url", ErrFetchFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("thumbnail fetch failed", "url", url, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("thumbnail fetch returned bad status", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return data, nil
}
