package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/repository"
)

func TestChannelService_Lookup(t *testing.T) {
	ctx := context.Background()
	channels := newMemChannels()
	_, err := channels.Upsert(ctx, "UC1", "https://www.youtube.com/@one")
	require.NoError(t, err)

	svc := NewChannelService(channels)

	ch, err := svc.Lookup(ctx, "UC1")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/@one", ch.URL)

	_, err = svc.Lookup(ctx, "UCmissing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVideoService_LookupByVideoID(t *testing.T) {
	ctx := context.Background()
	videos := newMemVideos()
	_, err := videos.Upsert(ctx, model.ParsedVideo{
		VideoID:     "abc123",
		Title:       "hello world",
		PublishedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, 1)
	require.NoError(t, err)

	svc := NewVideoService(videos)

	v, err := svc.LookupByVideoID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.Title)
	assert.Equal(t, model.NoMatch, v.Label())

	_, err = svc.LookupByVideoID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
