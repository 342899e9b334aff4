package youtube

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

var (
	directIDRe  = regexp.MustCompile(`(?i)channel/([a-zA-Z0-9_-]+)`)
	handleRe    = regexp.MustCompile(`(?:@|user/|c/)([a-zA-Z0-9_-]+)`)
	embeddedRe  = regexp.MustCompile(`"channelId":"([a-zA-Z0-9_-]+)"`)
	linkRe      = regexp.MustCompile(`(?i)youtube\.com/channel/([a-zA-Z0-9_-]+)`)
	feedOwnerRe = regexp.MustCompile(`(?is)<yt:channelId>(.*?)</yt:channelId>`)
)

// Strategy tries to derive a channel ID from a URL. ok is false when the
// strategy has nothing to offer; errors are handled inside the strategy.
type Strategy func(ctx context.Context, rawURL string) (channelID string, ok bool)

// Resolver turns channel URLs into channel IDs by trying strategies in order.
type Resolver struct {
	strategies []Strategy
	memo       *cache.Cache
	log        zerolog.Logger
}

// NewResolver returns a resolver that tries, in order: a channel/<id> segment
// in the URL, a scrape of the page markup, and the legacy username feed.
// Successful resolutions are memoized for ttl; ttl <= 0 disables memoization.
func NewResolver(client *Client, ttl time.Duration, log zerolog.Logger) *Resolver {
	r := &Resolver{log: log}
	if ttl > 0 {
		r.memo = cache.New(ttl, 2*ttl)
	}
	r.strategies = []Strategy{
		DirectID,
		r.scrapePage(client),
		r.userFeed(client),
	}
	return r
}

// NewResolverWithStrategies returns a resolver running exactly the given strategies.
func NewResolverWithStrategies(log zerolog.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, log: log}
}

// Resolve returns the channel ID for rawURL, or ok=false when every strategy failed.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, bool) {
	if r.memo != nil {
		if id, found := r.memo.Get(rawURL); found {
			return id.(string), true
		}
	}
	for _, s := range r.strategies {
		if id, ok := s(ctx, rawURL); ok {
			if r.memo != nil {
				r.memo.SetDefault(rawURL, id)
			}
			return id, true
		}
	}
	return "", false
}

// DirectID matches a channel/<id> segment without any network call.
func DirectID(_ context.Context, rawURL string) (string, bool) {
	return firstGroup(directIDRe, rawURL)
}

// Handle extracts the @handle, user/<name> or c/<name> token from a URL.
func Handle(rawURL string) (string, bool) {
	return firstGroup(handleRe, rawURL)
}

// ChannelIDFromHTML scans page markup for an embedded "channelId" literal,
// then for any youtube.com/channel/<id> link.
func ChannelIDFromHTML(html string) (string, bool) {
	if id, ok := firstGroup(embeddedRe, html); ok {
		return id, true
	}
	return firstGroup(linkRe, html)
}

// ChannelIDFromFeed extracts the <yt:channelId> of a feed.
func ChannelIDFromFeed(xml string) (string, bool) {
	return firstGroup(feedOwnerRe, xml)
}

func (r *Resolver) scrapePage(client *Client) Strategy {
	return func(ctx context.Context, rawURL string) (string, bool) {
		html, err := client.FetchPage(ctx, rawURL)
		if err != nil {
			r.log.Warn().Err(err).Str("url", rawURL).Msg("resolve: page scrape failed")
			return "", false
		}
		return ChannelIDFromHTML(html)
	}
}

func (r *Resolver) userFeed(client *Client) Strategy {
	return func(ctx context.Context, rawURL string) (string, bool) {
		handle, ok := Handle(rawURL)
		if !ok {
			return "", false
		}
		feed, err := client.FetchPage(ctx, client.UserFeedURL(handle))
		if err != nil {
			r.log.Warn().Err(err).Str("handle", handle).Msg("resolve: legacy user feed failed")
			return "", false
		}
		return ChannelIDFromFeed(feed)
	}
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}
