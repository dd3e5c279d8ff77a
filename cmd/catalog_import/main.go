// catalog_import runs the ingestion pipeline for a bounded window against
// a YAML source catalogue and prints the resulting statistics. Useful for
// smoke-testing a catalogue before handing it to ingestd.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/steamhub/ingest/internal/catalog"
	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
	"github.com/steamhub/ingest/internal/pipeline"
	"github.com/steamhub/ingest/pkg/config/env"
)

const defaultRunWindow = 30 * time.Second

func main() {
	if err := env.LoadDotEnv("cmd/catalog_import/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	sources, err := loadSources()
	if err != nil {
		slog.Error("failed to load catalogue", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New()
	for _, src := range sources {
		if err := pipe.AddSource(src, fetch.DefaultForKind(src.Kind)); err != nil {
			slog.Error("failed to register source", "source", src.SourceID, "error", err)
			os.Exit(1)
		}
	}

	window := defaultRunWindow
	if raw := os.Getenv("RUN_WINDOW"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("invalid RUN_WINDOW", "value", raw, "error", err)
			os.Exit(1)
		}
		window = parsed
	}

	slog.Info("starting bounded ingestion run", "sources", len(sources), "window", window)

	ctx, cancel := context.WithTimeout(context.Background(), window)
	defer cancel()
	_ = pipe.Run(ctx)

	stats := pipe.Statistics()
	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		slog.Error("failed to render statistics", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	recent := pipe.RecentContent(24*time.Hour, "", 0.7)
	fmt.Printf("\n%d high-priority items:\n", len(recent))
	for i, content := range recent {
		if i >= 5 {
			break
		}
		fmt.Printf("- %s (priority %.2f)\n", content.Title, content.PriorityScore)
	}
}

func loadSources() ([]domain.ContentSource, error) {
	path := os.Getenv("CATALOG_PATH")
	if path == "" {
		return catalog.DefaultSources(), nil
	}
	return catalog.LoadFile(path)
}
