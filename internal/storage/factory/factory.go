package factory

import (
	"context"
	"fmt"

	"github.com/steamhub/ingest/internal/storage"
	"github.com/steamhub/ingest/internal/storage/es"
	"github.com/steamhub/ingest/internal/storage/pg"
)

// NewArchive creates the configured archive Appender. A nil Appender (for
// in_mem) means the pipeline keeps content only in its own memory store.
func NewArchive(ctx context.Context, cfg *ArchiveConfig) (storage.Appender, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewArchive(pool), nil

	case storage.ES:
		return es.NewArchive(*cfg.Es)

	case storage.InMem:
		return nil, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedArchive), cfg.Type)
	}
}
