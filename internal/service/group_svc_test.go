package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

func TestBuildGroups_SharedLabelAcrossChannels(t *testing.T) {
	now := time.Now()
	channels := []model.Channel{
		{ID: 1, ChannelID: "c1", URL: "u1", ThemeSummary: strPtr("alpha, beta")},
		{ID: 2, ChannelID: "c2", URL: "u2", ThemeSummary: strPtr("gamma")},
	}
	videos := []model.Video{
		{ID: 11, VideoID: "v1", Title: "alpha test", PublishedAt: now, CreatedAt: now, TopicLabel: strPtr("group1"), ChannelKey: 1},
		{ID: 12, VideoID: "v2", Title: "beta test", PublishedAt: now, CreatedAt: now, TopicLabel: strPtr("group1"), ChannelKey: 2},
	}

	groups := BuildGroups(videos, channels)

	require.Len(t, groups, 1)
	assert.Equal(t, "group1", groups[0].Label)
	assert.Len(t, groups[0].Videos, 2)
	require.Len(t, groups[0].Channels, 2)
	assert.Equal(t, int64(1), groups[0].Channels[0].ID)
	assert.Equal(t, int64(2), groups[0].Channels[1].ID)
	assert.Equal(t, "alpha, beta", *groups[0].Channels[0].ThemeSummary)
}

func TestBuildGroups_UnlabelledAndMissingChannels(t *testing.T) {
	channels := []model.Channel{{ID: 1, ChannelID: "c1"}}
	videos := []model.Video{
		{ID: 1, VideoID: "a", ChannelKey: 1},
		{ID: 2, VideoID: "b", ChannelKey: 99},
		{ID: 3, VideoID: "c", ChannelKey: 1, TopicLabel: strPtr(model.NoMatch)},
		{ID: 4, VideoID: "d", ChannelKey: 1, TopicLabel: strPtr("topic")},
	}

	groups := BuildGroups(videos, channels)

	require.Len(t, groups, 2)
	assert.Equal(t, model.NoMatch, groups[0].Label)
	assert.Equal(t, []string{"a", "b", "c"}, groupVideoIDs(groups[0]))
	assert.Equal(t, []string{"c1"}, groupChannelIDs(groups[0]))
	assert.Equal(t, "topic", groups[1].Label)
}

func TestBuildGroups_Empty(t *testing.T) {
	groups := BuildGroups(nil, nil)

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGetGroups_WithoutCache(t *testing.T) {
	channels, videos := newMemChannels(), newMemVideos()
	seed(t, channels, videos, "UC1", "first title here")
	svc := NewGroupService(videos, channels, &CacheService{}, zerolog.Nop())

	groups, err := svc.GetGroups(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, model.NoMatch, groups[0].Label)
	assert.Equal(t, []string{"UC1"}, groupChannelIDs(groups[0]))
}

func TestGetGroups_PopulatesCache(t *testing.T) {
	channels, videos := newMemChannels(), newMemVideos()
	seed(t, channels, videos, "UC1", "first title here")
	cache := &memGroupCache{}
	svc := NewGroupService(videos, channels, cache, zerolog.Nop())

	first, err := svc.GetGroups(context.Background())
	require.NoError(t, err)
	second, err := svc.GetGroups(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second call should be served from cache")
}

func TestGetGroups_InvalidatedDuringRebuildIsNotCached(t *testing.T) {
	ctx := context.Background()
	channels, mem := newMemChannels(), newMemVideos()
	seed(t, channels, mem, "UC1", "first title here")
	cache := &memGroupCache{}
	videos := &hookVideos{memVideos: mem}
	svc := NewGroupService(videos, channels, cache, zerolog.Nop())

	// an ingest lands after the rebuild read its snapshot
	videos.afterFindAll = func() {
		seed(t, channels, mem, "UC2", "second title here")
		svc.Invalidate(ctx)
	}

	stale, err := svc.GetGroups(ctx)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Len(t, stale[0].Videos, 1)
	assert.Equal(t, 0, cache.sets, "stale rebuild must not be written back")

	fresh, err := svc.GetGroups(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Len(t, fresh[0].Videos, 2)
	assert.Equal(t, 1, cache.sets)
}
