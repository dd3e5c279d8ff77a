package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/steamhub/ingest/internal/storage"
	"github.com/steamhub/ingest/internal/storage/es"
	"github.com/steamhub/ingest/internal/storage/pg"
)

type ArchiveConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

// LoadEnv reads the archive configuration from the environment. An unset
// STORAGE_TYPE means memory-only operation, which is the default.
func LoadEnv() (*ArchiveConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.InMem
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.ES, storage.PG, storage.InMem})
	}

	var esCfg *es.ClientConfig
	if storageType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	return &ArchiveConfig{
		Type: storageType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}
