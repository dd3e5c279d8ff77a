// Package es archives committed content into Elasticsearch so downstream
// search surfaces can rank and filter the feed independently of the
// running pipeline.
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/steamhub/ingest/internal/domain"
)

type Archive struct {
	client    *elasticsearch.TypedClient
	indexer   esutil.BulkIndexer
	indexName string
}

// document is the index shape for one ingested item.
type document struct {
	ContentID          string    `json:"content_id"`
	SourceID           string    `json:"source_id"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	URL                string    `json:"url"`
	PublishDate        time.Time `json:"publish_date"`
	Authors            []string  `json:"authors,omitempty"`
	Keywords           []string  `json:"keywords,omitempty"`
	DOI                string    `json:"doi,omitempty"`
	CitationCount      int       `json:"citation_count"`
	DetectedDomains    []string  `json:"detected_domains,omitempty"`
	PriorityScore      float64   `json:"priority_score"`
	IngestionTimestamp time.Time `json:"ingestion_timestamp"`
	IndexedAt          time.Time `json:"indexed_at"`
}

func NewArchive(config ClientConfig) (*Archive, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         config.IndexName,
		Client:        client,
		NumWorkers:    2,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	return &Archive{
		client:    client,
		indexer:   bi,
		indexName: config.IndexName,
	}, nil
}

// Append hands the item to the bulk indexer; flushing happens on size or
// interval, not per call.
func (a *Archive) Append(ctx context.Context, content domain.RawContent) error {
	doc := toDocument(content)

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", doc.ContentID, err)
	}

	err = a.indexer.Add(ctx, esutil.BulkIndexerItem{
		Action:     "index",
		DocumentID: doc.ContentID,
		Body:       bytes.NewReader(docBytes),
		OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			if err != nil {
				slog.Error("bulk index error", "error", err, "id", item.DocumentID)
			} else {
				slog.Error("bulk index rejected", "type", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue document %s: %w", doc.ContentID, err)
	}
	return nil
}

// Close flushes outstanding items and reports indexer totals.
func (a *Archive) Close(ctx context.Context) error {
	if err := a.indexer.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := a.indexer.Stats()
	slog.Info("elasticsearch archive closed",
		"index", a.indexName,
		"flushed", stats.NumFlushed,
		"failed", stats.NumFailed,
	)
	return nil
}

func toDocument(c domain.RawContent) document {
	return document{
		ContentID:          c.ContentID,
		SourceID:           c.SourceID,
		Title:              c.Title,
		Content:            c.Content,
		URL:                c.URL,
		PublishDate:        c.PublishDate,
		Authors:            c.Authors,
		Keywords:           c.Keywords,
		DOI:                c.DOI,
		CitationCount:      c.CitationCount,
		DetectedDomains:    c.DetectedDomains,
		PriorityScore:      c.PriorityScore,
		IngestionTimestamp: c.IngestionTimestamp,
		IndexedAt:          time.Now(),
	}
}
