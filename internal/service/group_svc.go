package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/topictube/topictube-go/internal/metrics"
	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

type GroupService struct {
	videos   VideoStore
	channels ChannelStore
	cache    GroupCache
	log      zerolog.Logger

	// gen is bumped by every Invalidate; a rebuild started under an older
	// generation must not be written back.
	mu  sync.Mutex
	gen uint64
}

func NewGroupService(videos VideoStore, channels ChannelStore, cache GroupCache, log zerolog.Logger) *GroupService {
	return &GroupService{videos: videos, channels: channels, cache: cache, log: log}
}

// GetGroups returns every video bucketed by topic label.
// Uses cache-aside: check Redis first, fall back to the store, then populate cache.
func (s *GroupService) GetGroups(ctx context.Context) ([]model.Group, error) {
	cached, err := s.cache.GetGroups(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache: groups get error")
	} else if cached != nil {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	groups, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return groups, nil
	}
	if err := s.cache.SetGroups(ctx, groups); err != nil {
		s.log.Warn().Err(err).Msg("cache: groups set error")
	}
	return groups, nil
}

// Invalidate drops the cached grouping and stops in-flight rebuilds from
// writing a stale one back.
func (s *GroupService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.InvalidateGroups(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache: groups invalidate error")
	}
}

func (s *GroupService) build(ctx context.Context) ([]model.Group, error) {
	videos, err := s.videos.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	channels, err := s.channels.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildGroups(videos, channels), nil
}

// BuildGroups buckets videos by label (model.NoMatch for unlabelled videos) in
// first-seen order and attaches the distinct channels each bucket references.
// Channel keys with no matching channel are dropped.
func BuildGroups(videos []model.Video, channels []model.Channel) []model.Group {
	byKey := make(map[int64]model.Channel, len(channels))
	for _, ch := range channels {
		byKey[ch.ID] = ch
	}

	type acc struct {
		group model.Group
		seen  map[int64]struct{}
	}
	var order []string
	groups := make(map[string]*acc)

	for _, v := range videos {
		label := v.Label()
		g, ok := groups[label]
		if !ok {
			g = &acc{
				group: model.Group{Label: label, Videos: []model.Video{}, Channels: []model.Channel{}},
				seen:  make(map[int64]struct{}),
			}
			groups[label] = g
			order = append(order, label)
		}
		g.group.Videos = append(g.group.Videos, v)

		if _, dup := g.seen[v.ChannelKey]; dup {
			continue
		}
		g.seen[v.ChannelKey] = struct{}{}
		if ch, found := byKey[v.ChannelKey]; found {
			g.group.Channels = append(g.group.Channels, ch)
		}
	}

	out := make([]model.Group, 0, len(order))
	for _, label := range order {
		out = append(out, groups[label].group)
	}
	return out
}
