package main

import (
	"log/slog"
	"os"

	"github.com/steamhub/ingest/internal/storage/factory"
	"github.com/steamhub/ingest/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{}
}

type AppConfig struct{}

type IngestdConfig struct {
	// CataloguePath points to a YAML source catalogue; empty means the
	// built-in default sources.
	CataloguePath string
	ArchiveConfig *factory.ArchiveConfig
}

func (ac *AppConfig) Load() (*IngestdConfig, error) {
	if err := env.LoadDotEnv("cmd/ingestd/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	archiveCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load archive configuration from environment", "error", err)
		return nil, err
	}

	return &IngestdConfig{
		CataloguePath: os.Getenv("CATALOG_PATH"),
		ArchiveConfig: archiveCfg,
	}, nil
}
