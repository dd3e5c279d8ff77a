package fetch

import (
	"context"

	"github.com/steamhub/ingest/internal/domain"
)

// StaticFetcher serves a fixed list of items on every cycle. It seeds
// demos and stands in for source kinds whose upstream integration is not
// wired yet (research paper repositories behind API keys, for one).
type StaticFetcher struct {
	Items []Item
}

func NewStaticFetcher(items ...Item) *StaticFetcher {
	return &StaticFetcher{Items: items}
}

func (f *StaticFetcher) Fetch(_ context.Context, _ domain.ContentSource) ([]Item, error) {
	out := make([]Item, len(f.Items))
	copy(out, f.Items)
	return out, nil
}
