package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
	"github.com/mathieu-neron/topictube/topictube-go/internal/service"
	"github.com/mathieu-neron/topictube/topictube-go/internal/youtube"
)

type stubIngester struct {
	groups []model.Group
	err    error
	got    []string
}

func (s *stubIngester) Ingest(_ context.Context, urls []string) ([]model.Group, error) {
	s.got = urls
	return s.groups, s.err
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func postIngest(t *testing.T, ing Ingester, batchSize int, body string) (*http.Response, []byte) {
	t.Helper()
	app := fiber.New()
	app.Post("/api/videos/ingest", NewIngestHandler(ing, batchSize, zerolog.Nop()).Ingest)

	req := httptest.NewRequest(http.MethodPost, "/api/videos/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

const threeURLs = `{"urls":["https://www.youtube.com/@a","https://www.youtube.com/@b","https://www.youtube.com/@c"]}`

func TestIngest_ReturnsGroups(t *testing.T) {
	label := "rust async runtime"
	ing := &stubIngester{groups: []model.Group{{
		Label:    label,
		Videos:   []model.Video{{ID: 1, VideoID: "v1", Title: "t", TopicLabel: &label, ChannelKey: 1}},
		Channels: []model.Channel{{ID: 1, ChannelID: "UC1", URL: "https://www.youtube.com/@a"}},
	}}}

	resp, raw := postIngest(t, ing, 3, threeURLs)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var groups []model.Group
	require.NoError(t, json.Unmarshal(raw, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, label, groups[0].Label)
	assert.Equal(t, "UC1", groups[0].Channels[0].ChannelID)
	assert.Len(t, ing.got, 3)
}

func TestIngest_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unresolved", &service.ResolveError{URL: "https://www.youtube.com/@b"}, fiber.StatusBadRequest, "UNRESOLVED_CHANNEL"},
		{"feed unavailable", fmt.Errorf("channel UC1: %w", youtube.ErrFeedUnavailable), fiber.StatusBadGateway, "FEED_UNAVAILABLE"},
		{"empty batch", service.ErrEmptyBatch, fiber.StatusBadRequest, "EMPTY_BATCH"},
		{"store failure", fmt.Errorf("upsert video: boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := postIngest(t, &stubIngester{err: tt.err}, 3, threeURLs)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestIngest_UnresolvedNamesURL(t *testing.T) {
	ing := &stubIngester{err: &service.ResolveError{URL: "https://www.youtube.com/@b"}}
	_, raw := postIngest(t, ing, 3, threeURLs)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body.Error.Message, "https://www.youtube.com/@b")
}

func TestIngest_FeedUnavailableMessageIsGeneric(t *testing.T) {
	ing := &stubIngester{err: fmt.Errorf("channel UC1: %w", youtube.ErrFeedUnavailable)}
	_, raw := postIngest(t, ing, 3, threeURLs)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Unable to fetch YouTube feed.", body.Error.Message)
}

func TestIngest_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed json", `{"urls":`, "INVALID_BODY"},
		{"empty list", `{"urls":[]}`, "EMPTY_BATCH"},
		{"wrong count", `{"urls":["https://www.youtube.com/@a"]}`, "INVALID_FIELD"},
		{"invalid url", `{"urls":["https://www.youtube.com/@a","nope","https://www.youtube.com/@c"]}`, "INVALID_FIELD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := &stubIngester{}
			resp, raw := postIngest(t, ing, 3, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Nil(t, ing.got, "service must not run on rejected input")
		})
	}
}
