package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeEntryFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/">
  <title>Channel title</title>
  <published>2019-01-01T00:00:00+00:00</published>
  <entry><yt:videoId>a</yt:videoId><title>One</title><media:description></media:description><published>2024-01-03T00:00:00Z</published></entry>
  <entry><yt:videoId>b</yt:videoId><title>Two</title><media:description></media:description><published>2024-01-02T00:00:00Z</published></entry>
  <entry><yt:videoId>c</yt:videoId><title>Three</title><media:description></media:description><published>2024-01-01T00:00:00Z</published></entry>
</feed>`

func TestParseFeed_CapsToLimit(t *testing.T) {
	videos := ParseFeed(threeEntryFeed, 2)

	require.Len(t, videos, 2)
	assert.Equal(t, "a", videos[0].VideoID)
	assert.Equal(t, "One", videos[0].Title)
	assert.Equal(t, "b", videos[1].VideoID)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), videos[0].PublishedAt.UTC())
}

func TestParseFeed_AllWhenUnderLimit(t *testing.T) {
	videos := ParseFeed(threeEntryFeed, 15)

	require.Len(t, videos, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{videos[0].VideoID, videos[1].VideoID, videos[2].VideoID})
}

func TestParseFeed_DropsIncompleteEntries(t *testing.T) {
	xml := `<feed>
<entry><title>No id</title><published>2024-01-01T00:00:00Z</published></entry>
<entry><yt:videoId>x1</yt:videoId><published>2024-01-01T00:00:00Z</published></entry>
<entry><yt:videoId>x2</yt:videoId><title>No date</title></entry>
<entry><yt:videoId>x3</yt:videoId><title>Bad date</title><published>yesterday</published></entry>
<entry><yt:videoId>ok</yt:videoId><title>Kept</title><published>2024-01-01T00:00:00Z</published></entry>
</feed>`

	videos := ParseFeed(xml, 10)

	require.Len(t, videos, 1)
	assert.Equal(t, "ok", videos[0].VideoID)
	assert.Equal(t, "", videos[0].Description)
}

func TestParseFeed_DecodesEntities(t *testing.T) {
	xml := `<feed><entry>
<yt:videoId>e1</yt:videoId>
<title>Tom &amp; Jerry &quot;Live&quot;</title>
<media:group><media:title>ignored</media:title>
<media:description>a &lt;b&gt; c &#39;d&#39; &amp;quot;e&amp;quot;</media:description></media:group>
<published>2024-05-01T10:00:00+00:00</published>
</entry></feed>`

	videos := ParseFeed(xml, 10)

	require.Len(t, videos, 1)
	assert.Equal(t, `Tom & Jerry "Live"`, videos[0].Title)
	assert.Equal(t, `a <b> c 'd' "e"`, videos[0].Description)
	assert.NotContains(t, videos[0].Title, "&amp;")
	assert.NotContains(t, videos[0].Description, "&quot;")
}

// Each entity is replaced once, in order, so text escaped twice upstream keeps
// one level of escaping.
func TestDecodeEntities_SinglePass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"Tom &amp;amp; Jerry", "Tom &amp; Jerry"},
		{"&amp;lt;b&amp;gt;", "<b>"},
		{"&amp;#39;x&amp;#39;", "'x'"},
		{"no entities", "no entities"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEntities(tt.in))
		})
	}

	xml := `<feed><entry><yt:videoId>d1</yt:videoId><title>Tom &amp;amp; Jerry</title><published>2024-05-01T10:00:00Z</published></entry></feed>`
	videos := ParseFeed(xml, 10)
	require.Len(t, videos, 1)
	assert.Equal(t, "Tom &amp; Jerry", videos[0].Title)
}

func TestParseFeed_NoEntries(t *testing.T) {
	assert.Empty(t, ParseFeed("<feed></feed>", 5))
	assert.Empty(t, ParseFeed(threeEntryFeed, 0))
}
