package service

import (
	"context"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

type VideoService struct {
	videos VideoStore
}

func NewVideoService(videos VideoStore) *VideoService {
	return &VideoService{videos: videos}
}

// LookupByVideoID returns a stored video by its YouTube video ID.
func (s *VideoService) LookupByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	return s.videos.FindByVideoID(ctx, videoID)
}
