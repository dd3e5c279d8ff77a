package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/steamhub/ingest/internal/domain"
)

// maxFeedItems caps how many entries a single poll cycle takes from a
// feed; older entries will have been seen on previous cycles.
const maxFeedItems = 10

const defaultHTTPTimeout = 20 * time.Second

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Author      string `xml:"author"`
	Creator     string `xml:"creator"`
}

// RSSFetcher reads RSS 2.0 feeds over HTTP. It serves news, journal and
// announcement sources alike; the feed URL comes from the source config.
type RSSFetcher struct {
	client *http.Client
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (f *RSSFetcher) Fetch(ctx context.Context, src domain.ContentSource) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", src.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	entries := feed.Channel.Items
	if len(entries) > maxFeedItems {
		entries = entries[:maxFeedItems]
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			Title:       e.Title,
			Content:     e.Description,
			URL:         e.Link,
			PublishDate: parsePubDate(e.PubDate),
			Authors:     feedAuthors(e),
		})
	}

	return items, nil
}

func feedAuthors(e rssItem) []string {
	if e.Author != "" {
		return []string{e.Author}
	}
	if e.Creator != "" {
		return []string{e.Creator}
	}
	return nil
}

func parsePubDate(raw string) time.Time {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
