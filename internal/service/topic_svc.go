package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/topictube/topictube-go/internal/metrics"
	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/repository"
	"github.com/mathieu-neron/topictube/topictube-go/internal/topic"
)

// TopicService runs the corpus-wide clustering and channel theme passes.
type TopicService struct {
	videos     VideoStore
	channels   ChannelStore
	clusterer  *topic.Clusterer
	summarizer *topic.Summarizer
	log        zerolog.Logger
}

func NewTopicService(videos VideoStore, channels ChannelStore, cfg topic.Config, log zerolog.Logger) *TopicService {
	return &TopicService{
		videos:     videos,
		channels:   channels,
		clusterer:  topic.NewClusterer(cfg),
		summarizer: topic.NewSummarizer(cfg),
		log:        log,
	}
}

// AssignTopics relabels every stored video. Videos are clustered in creation
// order so the same corpus always yields the same labels.
func (s *TopicService) AssignTopics(ctx context.Context) error {
	start := time.Now()

	videos, err := s.videos.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load videos: %w", err)
	}

	docs := make([]topic.Document, len(videos))
	for i, v := range videos {
		docs[i] = topic.Document{Key: v.ID, Text: v.Text()}
	}
	labels := s.clusterer.Assign(docs)

	clustered := 0
	for _, label := range labels {
		if label != model.NoMatch {
			clustered++
		}
	}
	if err := s.videos.SaveLabels(ctx, labels); err != nil {
		return fmt.Errorf("save topic labels: %w", err)
	}

	elapsed := time.Since(start)
	metrics.TopicPassDuration.WithLabelValues("cluster").Observe(elapsed.Seconds())
	s.log.Info().
		Int("videos", len(videos)).
		Int("clustered", clustered).
		Dur("duration_ms", elapsed).
		Msg("topics assigned")
	return nil
}

// ComputeChannelThemes recomputes the theme summary of every channel that owns
// at least one video. Channels without keywords get their summary cleared.
func (s *TopicService) ComputeChannelThemes(ctx context.Context) error {
	start := time.Now()

	videos, err := s.videos.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load videos: %w", err)
	}

	var order []int64
	texts := make(map[int64][]string)
	for _, v := range videos {
		if _, ok := texts[v.ChannelKey]; !ok {
			order = append(order, v.ChannelKey)
		}
		texts[v.ChannelKey] = append(texts[v.ChannelKey], v.Text())
	}

	themes := make(map[int64]*string, len(order))
	for _, key := range order {
		if _, err := s.channels.FindByID(ctx, key); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return fmt.Errorf("load channel %d: %w", key, err)
		}
		themes[key] = s.summarizer.Summarize(texts[key])
	}
	if err := s.channels.SaveThemes(ctx, themes); err != nil {
		return fmt.Errorf("save channel themes: %w", err)
	}

	metrics.TopicPassDuration.WithLabelValues("theme").Observe(time.Since(start).Seconds())
	return nil
}
