package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP GET requests with a fixed User-Agent and timeout.
//
// Example usage:
//
//	client := NewClient(30*time.Second, "lastfm-graph")
//
//	// Fetch raw response, whatever the status
//	status, body, err := client.Do(ctx, "https://ws.audioscrobbler.com/2.0/?method=tag.getsimilar&tag=rock&api_key=...")
//
//	// Download cover art
//	image, err := client.DownloadBytes(ctx, artworkURL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// A zero timeout means 60 seconds; an empty userAgent means "lastfm-graph".
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if userAgent == "" {
		userAgent = "lastfm-graph"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Do performs a GET request and returns the status code and body.
//
// Unlike Get, a non-200 status is not an error: the Last.fm API reports
// failures as XML documents with 4xx statuses, and the caller needs the body
// to read them.
func (c *Client) Do(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	status, body, err := c.Do(ctx, url)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}
	return body, nil
}

// DownloadBytes downloads a small file, such as cover art, into memory.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, album.Images()["extralarge"])
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
