package youtube

import (
	"regexp"
	"strings"
	"time"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

const entryOpen = "<entry>"

var (
	videoIDTagRe     = tagPattern("yt:videoId")
	titleTagRe       = tagPattern("title")
	descriptionTagRe = tagPattern("media:description")
	publishedTagRe   = tagPattern("published")

	// applied in order, so "&amp;quot;" decodes fully to a quote
	entities = [][2]string{
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", `"`},
		{"&#39;", "'"},
	}
)

func tagPattern(tag string) *regexp.Regexp {
	t := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?is)<` + t + `[^>]*>(.*?)</` + t + `>`)
}

// ParseFeed extracts up to limit videos from raw feed XML, in feed order.
//
// The text is split on entry boundaries and each field is found by its own
// pattern, so a malformed entry never affects its neighbours. Entries without
// a video ID, title or RFC 3339 published timestamp are skipped.
func ParseFeed(xml string, limit int) []model.ParsedVideo {
	if limit <= 0 {
		return nil
	}
	blocks := strings.Split(xml, entryOpen)
	if len(blocks) < 2 {
		return nil
	}

	var videos []model.ParsedVideo
	for _, entry := range blocks[1:] {
		if len(videos) == limit {
			break
		}
		v, ok := parseEntry(entry)
		if !ok {
			continue
		}
		videos = append(videos, v)
	}
	return videos
}

func parseEntry(entry string) (model.ParsedVideo, bool) {
	videoID, ok := firstGroup(videoIDTagRe, entry)
	if !ok {
		return model.ParsedVideo{}, false
	}
	title, ok := firstGroup(titleTagRe, entry)
	if !ok {
		return model.ParsedVideo{}, false
	}
	published, ok := firstGroup(publishedTagRe, entry)
	if !ok {
		return model.ParsedVideo{}, false
	}
	publishedAt, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return model.ParsedVideo{}, false
	}
	description, _ := firstGroup(descriptionTagRe, entry)

	return model.ParsedVideo{
		VideoID:     videoID,
		Title:       DecodeEntities(title),
		Description: DecodeEntities(description),
		PublishedAt: publishedAt,
	}, true
}

// DecodeEntities replaces the five XML entities YouTube escapes in titles and descriptions.
func DecodeEntities(s string) string {
	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return s
}
