// Package pg archives committed content into Postgres. The pipeline's
// source of truth stays in memory; this is the durable copy downstream
// systems query after a restart.
package pg

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/steamhub/ingest/internal/domain"
)

const contentTable = "ingested_content"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Archive struct {
	pool *ConnectionPool
}

func NewArchive(pool *ConnectionPool) *Archive {
	return &Archive{pool: pool}
}

func (a *Archive) Append(ctx context.Context, content domain.RawContent) error {
	query, args, err := psql.
		Insert(contentTable).
		Columns("id", "content_id", "source_id", "title", "content", "url",
			"publish_date", "authors", "keywords", "doi", "citation_count",
			"detected_domains", "priority_score", "ingestion_timestamp").
		Values(uuid.New(), content.ContentID, content.SourceID, content.Title,
			content.Content, content.URL, content.PublishDate, content.Authors,
			content.Keywords, content.DOI, content.CitationCount,
			content.DetectedDomains, content.PriorityScore, content.IngestionTimestamp).
		Suffix("ON CONFLICT (content_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := a.pool.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert content %s: %w", content.ContentID, err)
	}
	return nil
}

// Recent mirrors the pipeline's in-memory query against the archive, for
// readers that outlive a pipeline run.
func (a *Archive) Recent(ctx context.Context, cutoff time.Time, domainFilter string, minPriority float64) ([]domain.RawContent, error) {
	builder := psql.
		Select("content_id", "source_id", "title", "content", "url",
			"publish_date", "authors", "keywords", "doi", "citation_count",
			"detected_domains", "priority_score", "ingestion_timestamp").
		From(contentTable).
		Where(sq.GtOrEq{"ingestion_timestamp": cutoff}).
		Where(sq.GtOrEq{"priority_score": minPriority}).
		OrderBy("priority_score DESC", "ingestion_timestamp DESC")

	if domainFilter != "" {
		builder = builder.Where("? = ANY(detected_domains)", domainFilter)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := a.pool.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent content: %w", err)
	}
	defer rows.Close()

	var out []domain.RawContent
	for rows.Next() {
		var c domain.RawContent
		if err := rows.Scan(&c.ContentID, &c.SourceID, &c.Title, &c.Content,
			&c.URL, &c.PublishDate, &c.Authors, &c.Keywords, &c.DOI,
			&c.CitationCount, &c.DetectedDomains, &c.PriorityScore,
			&c.IngestionTimestamp); err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
