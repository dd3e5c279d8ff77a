package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamhub/ingest/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <item>
      <title>First Entry</title>
      <link>https://example.com/1</link>
      <description>A study of protein folding</description>
      <pubDate>Mon, 02 Jun 2025 10:00:00 +0000</pubDate>
      <author>editor@example.com</author>
    </item>
    <item>
      <title>Second Entry</title>
      <link>https://example.com/2</link>
      <description>Robotics automation news</description>
      <pubDate>not-a-date</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	f := NewRSSFetcher()
	items, err := f.Fetch(t.Context(), domain.ContentSource{SourceID: "feed", URL: srv.URL})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "First Entry", items[0].Title)
	assert.Equal(t, "https://example.com/1", items[0].URL)
	assert.Equal(t, []string{"editor@example.com"}, items[0].Authors)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), items[0].PublishDate.UTC())

	// Unparseable pubDate falls back to the fetch time.
	assert.WithinDuration(t, time.Now(), items[1].PublishDate, time.Minute)
}

func TestRSSFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewRSSFetcher()
	_, err := f.Fetch(t.Context(), domain.ContentSource{SourceID: "feed", URL: srv.URL})
	assert.Error(t, err)
}
