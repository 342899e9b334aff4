package service

import (
	"context"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

type ChannelService struct {
	channels ChannelStore
}

func NewChannelService(channels ChannelStore) *ChannelService {
	return &ChannelService{channels: channels}
}

// Lookup returns a stored channel by its YouTube channel ID.
func (s *ChannelService) Lookup(ctx context.Context, channelID string) (*model.Channel, error) {
	return s.channels.FindByChannelID(ctx, channelID)
}
