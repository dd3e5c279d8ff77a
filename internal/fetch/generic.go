package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/steamhub/ingest/internal/domain"
)

// genericContentCap limits how much extracted page text one item carries.
const genericContentCap = 1000

// GenericFetcher pulls a single HTML page and extracts its title and body
// text. It backs source kinds with no structured feed (conference, patent,
// educational pages).
type GenericFetcher struct {
	client *http.Client
}

func NewGenericFetcher() *GenericFetcher {
	return &GenericFetcher{
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (f *GenericFetcher) Fetch(ctx context.Context, src domain.ContentSource) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %s: unexpected status %d", src.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", src.URL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = src.Name
	}

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) > genericContentCap {
		text = text[:genericContentCap]
	}

	return []Item{{
		Title:       title,
		Content:     text,
		URL:         src.URL,
		PublishDate: time.Now(),
	}}, nil
}
