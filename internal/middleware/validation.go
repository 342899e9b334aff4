package middleware

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxVideoIDLen   = 32  // videos.video_id VARCHAR(32)
	MaxChannelIDLen = 64  // channels.channel_id VARCHAR(64)
	MinURLLen       = 5
	MaxURLLen       = 200
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", fmt.Sprintf("videoId must be at most %d characters", MaxVideoIDLen)
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", fmt.Sprintf("channelId must be at most %d characters", MaxChannelIDLen)
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelURL checks that a channel URL is an absolute http(s) URL within length limits.
func ValidateChannelURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if len(raw) < MinURLLen || len(raw) > MaxURLLen {
		return "", fmt.Sprintf("each URL must be %d-%d characters", MinURLLen, MaxURLLen)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Sprintf("%q is not a valid URL", raw)
	}
	return raw, ""
}

// ValidateIngestURLs checks the batch size and every URL. batchSize <= 0
// accepts any non-empty batch.
func ValidateIngestURLs(urls []string, batchSize int) ([]string, string) {
	if len(urls) == 0 {
		return nil, "urls must contain at least one channel URL"
	}
	if batchSize > 0 && len(urls) != batchSize {
		return nil, fmt.Sprintf("urls must contain exactly %d channel URLs", batchSize)
	}
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, errMsg := ValidateChannelURL(raw)
		if errMsg != "" {
			return nil, errMsg
		}
		out = append(out, u)
	}
	return out, ""
}
