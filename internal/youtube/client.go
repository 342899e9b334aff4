package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where channel feeds are served from.
	DefaultBaseURL = "https://www.youtube.com"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119 Safari/537.36"
	acceptLanguage   = "en-US,en;q=0.9"

	// channel pages can be large; feeds are a few tens of KB
	maxBodyBytes = 4 << 20
)

// ErrFeedUnavailable is returned when a channel feed cannot be retrieved.
var ErrFeedUnavailable = errors.New("unable to fetch YouTube feed")

var errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)

// ClientConfig configures the outbound HTTP client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// RPS caps outbound requests per second across all calls; zero disables the limit.
	RPS float64
}

// Client performs the outbound requests needed for channel resolution and feed retrieval.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	log     zerolog.Logger
}

// NewClient returns a client with an explicit per-request timeout.
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

// FeedURL returns the syndication feed URL for a channel ID.
func (c *Client) FeedURL(channelID string) string {
	return c.baseURL + "/feeds/videos.xml?channel_id=" + url.QueryEscape(channelID)
}

// UserFeedURL returns the legacy username feed URL.
func (c *Client) UserFeedURL(user string) string {
	return c.baseURL + "/feeds/videos.xml?user=" + url.QueryEscape(user)
}

// FetchFeed downloads the raw feed XML for a channel. Any failure is reported
// as ErrFeedUnavailable; the upstream detail is logged.
func (c *Client) FetchFeed(ctx context.Context, channelID string) (string, error) {
	feedURL := c.FeedURL(channelID)
	body, err := c.get(ctx, feedURL, false)
	if err != nil {
		c.log.Error().Err(err).Str("url", feedURL).Msg("feed download failed")
		return "", ErrFeedUnavailable
	}
	return body, nil
}

// FetchPage downloads a page with browser-like headers, since YouTube varies
// its markup by locale and client.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	return c.get(ctx, pageURL, true)
}

func (c *Client) get(ctx context.Context, target string, browser bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if browser {
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept-Language", acceptLanguage)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("get %s: unexpected status %s", target, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	if len(body) > maxBodyBytes {
		return "", fmt.Errorf("read %s: %w", target, errBodyTooLarge)
	}
	return string(body), nil
}
