package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
     xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"
     xmlns:media="http://search.yahoo.com/mrss/"
     xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example World</title>
    <link>https://news.example.org</link>
    <description>World headlines</description>
    <item>
      <title> Bridge reopens after repairs </title>
      <link>https://news.example.org/bridge</link>
      <description>&lt;p&gt;The bridge is open again.&lt;/p&gt;</description>
      <pubDate>Mon, 02 Mar 2026 10:00:00 GMT</pubDate>
      <itunes:summary>Repairs took six months.</itunes:summary>
      <itunes:subtitle>City news</itunes:subtitle>
      <media:group>
        <media:description>Crews worked through the winter.</media:description>
      </media:group>
      <dc:publisher>Example Wire</dc:publisher>
      <dc:description>Officials confirmed the reopening date.</dc:description>
    </item>
    <item>
      <title>Second story</title>
      <link>https://news.example.org/second</link>
      <description>Plain text summary.</description>
      <media:description>Top-level media text.</media:description>
    </item>
  </channel>
</rss>`

func TestSourceFetchNormalizesItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "NewsSimplifierTest/1.0" {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssDoc))
	}))
	t.Cleanup(srv.Close)

	src := NewSource("example", srv.URL, "NewsSimplifierTest/1.0", time.Second, srv.Client())
	assert.Equal(t, "example", src.Name())
	assert.Equal(t, srv.URL, src.URL())

	feed, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Example World", feed.Title)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "https://news.example.org/bridge", first.Link)
	assert.Equal(t, "Bridge reopens after repairs", first.Title)
	assert.Contains(t, first.Description, "The bridge is open again.")
	assert.Equal(t, "Repairs took six months.", first.ITunesSummary)
	assert.Equal(t, "City news", first.Subtitle)
	assert.Equal(t, "Crews worked through the winter.", first.MediaDescription)
	assert.Equal(t, "Example Wire", first.Publisher)
	assert.Equal(t, "Officials confirmed the reopening date.", first.Summary)
	assert.Equal(t, 2026, first.PublishedAt.Year())

	second := feed.Items[1]
	assert.Equal(t, "Top-level media text.", second.MediaDescription)
	assert.Empty(t, second.Summary)
	assert.Equal(t, "Example World", second.Publisher)
}

func TestSourceFetchReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	_, err := NewSource("", srv.URL, "", time.Second, srv.Client()).Fetch(context.Background())
	assert.Error(t, err)
}
