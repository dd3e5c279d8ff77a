// Package main STEAM Ingest API
// @title STEAM Ingest API
// @version 1.0
// @description Content feed, statistics and source registration for the STEAM ingestion pipeline
// @BasePath /
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/steamhub/ingest/internal/catalog"
	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
	"github.com/steamhub/ingest/internal/pipeline"
	"github.com/steamhub/ingest/internal/router"
	"github.com/steamhub/ingest/internal/server"
	"github.com/steamhub/ingest/internal/storage/factory"
	pkgserver "github.com/steamhub/ingest/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "STEAM Ingest API is running")
	})

	archive, err := factory.NewArchive(s.Context(), cfg.ArchiveConfig)
	if err != nil {
		slog.Error("Failed to create content archive", "error", err)
		os.Exit(1)
	}

	var opts []pipeline.Option
	if archive != nil {
		opts = append(opts, pipeline.WithArchive(archive))
		slog.Info("Content archive enabled", "type", cfg.ArchiveConfig.Type)
	}

	pipe := pipeline.New(opts...)

	sources, err := loadCatalogue(cfg.CataloguePath)
	if err != nil {
		slog.Error("Failed to load source catalogue", "error", err)
		os.Exit(1)
	}
	for _, src := range sources {
		if err := pipe.AddSource(src, fetch.DefaultForKind(src.Kind)); err != nil {
			slog.Error("Failed to register source", "source", src.SourceID, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Source catalogue loaded", "sources", len(sources))

	go func() {
		if err := pipe.Run(s.Context()); err != nil {
			slog.Info("Pipeline stopped", "reason", err)
		}
	}()

	contentRouter := router.NewContentRouter(s.Echo, pipe)
	contentRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

func loadCatalogue(path string) ([]domain.ContentSource, error) {
	if path == "" {
		return catalog.DefaultSources(), nil
	}
	return catalog.LoadFile(path)
}
