package model

import "time"

// NoMatch is the topic label for videos that did not join a cluster of two or more.
const NoMatch = "No Match"

// Video is a feed entry persisted for a channel.
type Video struct {
	ID          int64     `json:"id"`
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	TopicLabel  *string   `json:"topicLabel"`
	ChannelKey  int64     `json:"channelId"`
}

// Label returns the topic label, or NoMatch when the video has not been clustered yet.
func (v Video) Label() string {
	if v.TopicLabel == nil || *v.TopicLabel == "" {
		return NoMatch
	}
	return *v.TopicLabel
}

// Text is the free text keywords are extracted from.
func (v Video) Text() string {
	return v.Title + " " + v.Description
}

// ParsedVideo is a single entry extracted from a channel feed.
type ParsedVideo struct {
	VideoID     string
	Title       string
	Description string
	PublishedAt time.Time
}
