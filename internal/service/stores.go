package service

import (
	"context"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

// ChannelStore persists channels. Implemented by repository.ChannelRepo and
// repository.SQLiteChannelRepo.
type ChannelStore interface {
	FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error)
	FindByID(ctx context.Context, id int64) (*model.Channel, error)
	Upsert(ctx context.Context, channelID, url string) (*model.Channel, error)
	SaveThemes(ctx context.Context, themes map[int64]*string) error
	FindAll(ctx context.Context) ([]model.Channel, error)
}

// VideoStore persists videos. FindAll must return videos in creation order.
type VideoStore interface {
	FindByVideoID(ctx context.Context, videoID string) (*model.Video, error)
	Upsert(ctx context.Context, v model.ParsedVideo, channelKey int64) (*model.Video, error)
	SaveLabels(ctx context.Context, labels map[int64]string) error
	FindAll(ctx context.Context) ([]model.Video, error)
}

// ChannelResolver maps a channel URL to a YouTube channel ID.
type ChannelResolver interface {
	Resolve(ctx context.Context, rawURL string) (string, bool)
}

// FeedFetcher downloads a channel's raw feed XML.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, channelID string) (string, error)
}

// GroupCache stores the grouped corpus view. Implemented by CacheService.
type GroupCache interface {
	GetGroups(ctx context.Context) ([]model.Group, error)
	SetGroups(ctx context.Context, groups []model.Group) error
	InvalidateGroups(ctx context.Context) error
}
