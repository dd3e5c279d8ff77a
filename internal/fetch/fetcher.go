// Package fetch defines the per-source fetch capability and its concrete
// adapters. The pipeline never dispatches on source kind itself; a Fetcher
// is injected when the source is registered.
package fetch

import (
	"context"
	"time"

	"github.com/steamhub/ingest/internal/domain"
)

// Item is one raw record as returned by a source, before classification
// and scoring.
type Item struct {
	Title         string
	Content       string
	URL           string
	PublishDate   time.Time
	Authors       []string
	Keywords      []string
	DOI           string
	CitationCount int
}

// Fetcher pulls the current batch of items from a source. Implementations
// must honor ctx cancellation; a fetch that cannot complete within the
// caller's deadline is a failed cycle for that source.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.ContentSource) ([]Item, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, src domain.ContentSource) ([]Item, error)

func (f FetcherFunc) Fetch(ctx context.Context, src domain.ContentSource) ([]Item, error) {
	return f(ctx, src)
}
