package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/handiism/lastfm-graph/internal/lastfm"
	"github.com/handiism/lastfm-graph/internal/xmltree"
)

// DefaultBaseURL is the Last.fm web-service root.
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// Service error codes worth retrying: 11 "Service Offline" and
// 16 "temporarily unavailable".
var retryableCodes = map[int]bool{11: true, 16: true}

// SessionConfig holds the settings of a Session.
type SessionConfig struct {
	// APIKey is sent as the api_key parameter of every request.
	APIKey string

	// BaseURL is the web-service root. Empty means DefaultBaseURL.
	BaseURL string

	// MaxRetries is the number of attempts per request. Values below 1 mean
	// a single attempt.
	MaxRetries int

	// RetryCooldown is the first backoff in seconds; each later wait is
	// multiplied by RetryExponent.
	RetryCooldown float64
	RetryExponent float64
}

// Session executes Last.fm methods. It implements lastfm.Fetcher and is safe
// for concurrent use.
type Session struct {
	client *Client
	cfg    SessionConfig
}

// NewSession creates a Session sending requests through client.
func NewSession(client *Client, cfg SessionConfig) *Session {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Session{client: client, cfg: cfg}
}

// Fetch calls the method named by params["method"] and returns the lfm root
// element of the response.
//
// Failures are *lastfm.RemoteError (transport, HTTP status or service error
// code) or wrap lastfm.ErrMalformedResponse.
func (s *Session) Fetch(ctx context.Context, params lastfm.Params) (lastfm.Node, error) {
	method := params.Method()
	requestURL, err := s.requestURL(params)
	if err != nil {
		return nil, &lastfm.RemoteError{Method: method, Err: err}
	}

	attempts := max(s.cfg.MaxRetries, 1)
	var lastErr error
	for try := 0; try < attempts; try++ {
		if try > 0 {
			slog.Warn("retrying request", "method", method, "attempt", try+1, "of", attempts, "error", lastErr)
			if err := s.waitForRetry(ctx, try-1); err != nil {
				return nil, &lastfm.RemoteError{Method: method, Err: err}
			}
		}

		slog.Debug("fetching", "method", method, "attempt", try+1)
		node, retry, err := s.fetchOnce(ctx, method, requestURL)
		if err == nil {
			return node, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// fetchOnce performs a single attempt and reports whether a failure is
// worth retrying.
func (s *Session) fetchOnce(ctx context.Context, method, requestURL string) (lastfm.Node, bool, error) {
	status, body, err := s.client.Do(ctx, requestURL)
	if err != nil {
		return nil, true, &lastfm.RemoteError{Method: method, Err: err}
	}

	node, err := xmltree.Parse(body)
	if err == nil {
		return node, false, nil
	}

	var remote *lastfm.RemoteError
	if errors.As(err, &remote) {
		remote.Method = method
		return nil, retryableCodes[remote.Code], remote
	}

	if status != http.StatusOK {
		return nil, status >= http.StatusInternalServerError, &lastfm.RemoteError{
			Method:  method,
			Code:    status,
			Message: http.StatusText(status),
		}
	}
	return nil, false, fmt.Errorf("%s: %w", method, err)
}

func (s *Session) requestURL(params lastfm.Params) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", s.cfg.BaseURL, err)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	if s.cfg.APIKey != "" {
		q.Set("api_key", s.cfg.APIKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Session) waitForRetry(ctx context.Context, tries int) error {
	cooldown := s.cfg.RetryCooldown * math.Pow(s.cfg.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}
