// Package transcript fetches timed-text transcripts for online videos and
// converts them to cues.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the timed-text endpoint.
	DefaultBaseURL = "https://www.youtube.com/api/timedtext"

	// DefaultTimeout bounds a whole Fetch.
	DefaultTimeout = 120 * time.Second

	// Retry configuration for transient errors
	maxAttempts   = 3
	baseRetryWait = 500 * time.Millisecond
)

// DefaultLanguages is the language priority order.
var DefaultLanguages = []string{"en", "zh-TW", "ja", "zh-Hant", "ko", "zh"}

// errNotFound means a language has no transcript.
var errNotFound = errors.New("no transcript for language")

// Client fetches transcripts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	languages  []string
	timeout    time.Duration
	retryWait  time.Duration
	logger     *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the timed-text endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithLanguages sets the language priority order.
func WithLanguages(langs []string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// WithTimeout bounds a whole Fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryWait sets the first retry backoff.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) {
		c.retryWait = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New creates a transcript client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		languages:  DefaultLanguages,
		timeout:    DefaultTimeout,
		retryWait:  baseRetryWait,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Languages returns the language priority order.
func (c *Client) Languages() []string {
	return c.languages
}

// Fetch returns the transcript in the first language that has one.
func (c *Client) Fetch(ctx context.Context, videoID string) (*core.Store, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	for _, lang := range c.languages {
		data, err := c.get(ctx, videoID, lang)
		if errors.Is(err, errNotFound) {
			c.logger.Debugw("No transcript", "video", videoID, "lang", lang)
			continue
		}
		if err != nil {
			return nil, "", err
		}

		store, err := Decode(data)
		if err != nil {
			c.logger.Warnw("Undecodable transcript", "video", videoID, "lang", lang, "error", err)
			continue
		}
		if store.IsEmpty() {
			continue
		}

		c.logger.Infow("Fetched transcript", "video", videoID, "lang", lang, "cues", store.Count())
		return store, lang, nil
	}

	return nil, "", fmt.Errorf("%w: %s", apperrors.ErrTranscriptUnavailable, videoID)
}

// URL builds the timed-text request URL.
func (c *Client) URL(videoID, lang string) string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL
	}
	q := u.Query()
	q.Set("v", videoID)
	q.Set("lang", lang)
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, videoID, lang string) ([]byte, error) {
	fullURL := c.URL(videoID, lang)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			wait := c.retryWait * time.Duration(1<<(attempt-1)) // exponential backoff
			c.logger.Debugw("Retrying transcript request", "attempt", attempt+1, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, timeoutError(ctx)
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, timeoutError(ctx)
			}
			lastErr = fmt.Errorf("%w: %v", apperrors.ErrNetworkError, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: failed to read response: %v", apperrors.ErrNetworkError, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: status %d", apperrors.ErrNetworkError, resp.StatusCode)
			continue
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFound
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("%w: status %d", apperrors.ErrNetworkError, resp.StatusCode)
		case len(body) == 0:
			return nil, errNotFound
		}

		return body, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

func timeoutError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: transcript fetch", apperrors.ErrTimeout)
	}
	return ctx.Err()
}
