// Package storage defines the append-only sink for committed content.
// The pipeline always writes to its in-memory store; an Appender is the
// optional archive it tees committed items into (Postgres, Elasticsearch).
package storage

import (
	"context"

	"github.com/steamhub/ingest/internal/domain"
)

type Appender interface {
	Append(ctx context.Context, content domain.RawContent) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type ArchiveError string

const (
	ErrUnsupportedArchive ArchiveError = "unsupported archive type: %s"
)

func (e ArchiveError) Error() string {
	return string(e)
}
