package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/repository"
	"github.com/mathieu-neron/topictube/topictube-go/internal/youtube"
)

type memChannels struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Channel
}

func newMemChannels() *memChannels {
	return &memChannels{byID: make(map[int64]*model.Channel)}
}

func (m *memChannels) FindByChannelID(_ context.Context, channelID string) (*model.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.byID {
		if ch.ChannelID == channelID {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memChannels) FindByID(_ context.Context, id int64) (*model.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (m *memChannels) Upsert(_ context.Context, channelID, url string) (*model.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.byID {
		if ch.ChannelID == channelID {
			ch.URL = url
			cp := *ch
			return &cp, nil
		}
	}
	m.nextID++
	ch := &model.Channel{ID: m.nextID, ChannelID: channelID, URL: url}
	m.byID[ch.ID] = ch
	cp := *ch
	return &cp, nil
}

func (m *memChannels) SaveThemes(_ context.Context, themes map[int64]*string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, theme := range themes {
		if ch, ok := m.byID[id]; ok {
			ch.ThemeSummary = theme
		}
	}
	return nil
}

func (m *memChannels) FindAll(_ context.Context) ([]model.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Channel, 0, len(m.byID))
	for _, ch := range m.byID {
		out = append(out, *ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memVideos struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Video
}

func newMemVideos() *memVideos {
	return &memVideos{byID: make(map[int64]*model.Video)}
}

func (m *memVideos) FindByVideoID(_ context.Context, videoID string) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.byID {
		if v.VideoID == videoID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memVideos) Upsert(_ context.Context, p model.ParsedVideo, channelKey int64) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.byID {
		if v.VideoID == p.VideoID {
			v.Title, v.Description, v.PublishedAt, v.ChannelKey = p.Title, p.Description, p.PublishedAt, channelKey
			cp := *v
			return &cp, nil
		}
	}
	m.nextID++
	v := &model.Video{
		ID: m.nextID, VideoID: p.VideoID, Title: p.Title, Description: p.Description,
		PublishedAt: p.PublishedAt, CreatedAt: time.Now(), ChannelKey: channelKey,
	}
	m.byID[v.ID] = v
	cp := *v
	return &cp, nil
}

func (m *memVideos) SaveLabels(_ context.Context, labels map[int64]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, label := range labels {
		if v, ok := m.byID[id]; ok {
			l := label
			v.TopicLabel = &l
		}
	}
	return nil
}

func (m *memVideos) FindAll(_ context.Context) ([]model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Video, 0, len(m.byID))
	for _, v := range m.byID {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mapResolver map[string]string

func (r mapResolver) Resolve(_ context.Context, rawURL string) (string, bool) {
	id, ok := r[rawURL]
	return id, ok
}

type mapFeeds struct {
	feeds   map[string]string
	fetched []string
}

func (f *mapFeeds) FetchFeed(_ context.Context, channelID string) (string, error) {
	f.fetched = append(f.fetched, channelID)
	xml, ok := f.feeds[channelID]
	if !ok {
		return "", youtube.ErrFeedUnavailable
	}
	return xml, nil
}

type entry struct{ id, title, description string }

func feedXML(entries ...entry) string {
	var b strings.Builder
	b.WriteString("<feed>")
	for i, e := range entries {
		fmt.Fprintf(&b, "<entry><yt:videoId>%s</yt:videoId><title>%s</title><media:description>%s</media:description><published>2024-01-%02dT00:00:00Z</published></entry>",
			e.id, e.title, e.description, i+1)
	}
	b.WriteString("</feed>")
	return b.String()
}

func strPtr(s string) *string { return &s }

type memGroupCache struct {
	mu     sync.Mutex
	groups []model.Group
	sets   int
}

func (m *memGroupCache) GetGroups(context.Context) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groups, nil
}

func (m *memGroupCache) SetGroups(_ context.Context, groups []model.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = groups
	m.sets++
	return nil
}

func (m *memGroupCache) InvalidateGroups(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = nil
	return nil
}

// hookVideos runs afterFindAll once, after the first FindAll has read its snapshot.
type hookVideos struct {
	*memVideos
	afterFindAll func()
}

func (h *hookVideos) FindAll(ctx context.Context) ([]model.Video, error) {
	videos, err := h.memVideos.FindAll(ctx)
	if h.afterFindAll != nil {
		fn := h.afterFindAll
		h.afterFindAll = nil
		fn()
	}
	return videos, err
}
