package model

// Channel is a YouTube channel that has been ingested at least once.
// ID is the internal key; ChannelID is YouTube's external identifier.
type Channel struct {
	ID           int64   `json:"id"`
	ChannelID    string  `json:"channelId"`
	URL          string  `json:"url"`
	ThemeSummary *string `json:"themeSummary"`
}
