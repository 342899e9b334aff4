package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/topictube/topictube-go/internal/metrics"
	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/youtube"
)

// IngestService pulls channel feeds into the store and refreshes topics and themes.
type IngestService struct {
	channels      ChannelStore
	videos        VideoStore
	resolver      ChannelResolver
	feeds         FeedFetcher
	topics        *TopicService
	groups        *GroupService
	maxPerChannel int
	log           zerolog.Logger

	// batches run one at a time; clustering reads the whole corpus
	mu sync.Mutex
}

func NewIngestService(
	channels ChannelStore,
	videos VideoStore,
	resolver ChannelResolver,
	feeds FeedFetcher,
	topics *TopicService,
	groups *GroupService,
	maxPerChannel int,
	log zerolog.Logger,
) *IngestService {
	return &IngestService{
		channels:      channels,
		videos:        videos,
		resolver:      resolver,
		feeds:         feeds,
		topics:        topics,
		groups:        groups,
		maxPerChannel: maxPerChannel,
		log:           log,
	}
}

// Ingest resolves and ingests each URL in order, then re-clusters the whole
// corpus, recomputes channel themes and returns the fresh grouping.
//
// The first URL that cannot be resolved or whose feed cannot be fetched aborts
// the batch. Records written for earlier URLs stay in place.
func (s *IngestService) Ingest(ctx context.Context, urls []string) (groups []model.Group, err error) {
	defer func() { metrics.IngestTotal.WithLabelValues(outcome(err)).Inc() }()

	if len(urls) == 0 {
		return nil, ErrEmptyBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.groups.Invalidate(ctx)

	start := time.Now()
	for _, u := range urls {
		if err := s.ingestOne(ctx, u); err != nil {
			return nil, err
		}
	}

	if err := s.topics.AssignTopics(ctx); err != nil {
		return nil, err
	}
	if err := s.topics.ComputeChannelThemes(ctx); err != nil {
		return nil, err
	}

	groups, err = s.groups.build(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("urls", len(urls)).
		Int("groups", len(groups)).
		Dur("duration_ms", time.Since(start)).
		Msg("ingest complete")
	return groups, nil
}

func (s *IngestService) ingestOne(ctx context.Context, rawURL string) error {
	channelID, ok := s.resolver.Resolve(ctx, rawURL)
	if !ok {
		return &ResolveError{URL: rawURL}
	}

	ch, err := s.channels.Upsert(ctx, channelID, rawURL)
	if err != nil {
		return fmt.Errorf("upsert channel %s: %w", channelID, err)
	}

	fetchStart := time.Now()
	xml, err := s.feeds.FetchFeed(ctx, channelID)
	metrics.FeedFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return fmt.Errorf("channel %s: %w", channelID, err)
	}

	parsed := youtube.ParseFeed(xml, s.maxPerChannel)
	for _, p := range parsed {
		if _, err := s.videos.Upsert(ctx, p, ch.ID); err != nil {
			return fmt.Errorf("upsert video %s: %w", p.VideoID, err)
		}
		metrics.VideosUpserted.Inc()
	}

	s.log.Info().
		Str("channel_id", channelID).
		Int("videos", len(parsed)).
		Msg("channel ingested")
	return nil
}

func outcome(err error) string {
	var resolveErr *ResolveError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyBatch):
		return "empty"
	case errors.As(err, &resolveErr):
		return "unresolved"
	case errors.Is(err, youtube.ErrFeedUnavailable):
		return "feed_unavailable"
	default:
		return "error"
	}
}
