package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/steamhub/ingest/internal/apperr"
	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/dto"
	"github.com/steamhub/ingest/internal/fetch"
	"github.com/steamhub/ingest/internal/pipeline"
)

const (
	defaultMaxAgeHours = 24
)

// FetcherFactory picks the fetch adapter for a newly registered source.
type FetcherFactory func(req dto.RegisterSourceRequest) fetch.Fetcher

// ContentRouter exposes the pipeline's feed, statistics and registration
// surface over HTTP.
type ContentRouter struct {
	e        *echo.Echo
	pipe     *pipeline.Pipeline
	fetchers FetcherFactory
}

type ContentRouterOption func(*ContentRouter)

// WithFetcherFactory overrides how fetchers are chosen for sources
// registered through the API.
func WithFetcherFactory(f FetcherFactory) ContentRouterOption {
	return func(r *ContentRouter) {
		r.fetchers = f
	}
}

func NewContentRouter(e *echo.Echo, pipe *pipeline.Pipeline, opts ...ContentRouterOption) *ContentRouter {
	r := &ContentRouter{
		e:    e,
		pipe: pipe,
		fetchers: func(req dto.RegisterSourceRequest) fetch.Fetcher {
			return fetch.DefaultForKind(domain.SourceKind(req.Kind))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ContentRouter) Bind() {
	r.e.GET("/content/recent", r.recentHandler)
	r.e.GET("/stats", r.statsHandler)
	r.e.POST("/sources", r.registerHandler)
	r.e.DELETE("/sources/:id", r.removeHandler)
}

// recentHandler godoc
// @Summary Recent ingested content
// @Description Items ingested within the age window, ordered by priority then recency
// @Param hours query int false "max age in hours" default(24)
// @Param domain query string false "detected domain filter"
// @Param min_priority query number false "minimum priority score"
// @Produce json
// @Success 200 {array} domain.RawContent
// @Router /content/recent [get]
func (r *ContentRouter) recentHandler(c echo.Context) error {
	hours := defaultMaxAgeHours
	if raw := c.QueryParam("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperr.NewValidation("hours must be a positive integer")
		}
		hours = parsed
	}

	minPriority := 0.0
	if raw := c.QueryParam("min_priority"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return apperr.NewValidation("min_priority must be a number in [0,1]")
		}
		minPriority = parsed
	}

	content := r.pipe.RecentContent(
		time.Duration(hours)*time.Hour,
		c.QueryParam("domain"),
		minPriority,
	)

	return c.JSON(http.StatusOK, content)
}

// statsHandler godoc
// @Summary Pipeline statistics
// @Produce json
// @Success 200 {object} pipeline.Stats
// @Router /stats [get]
func (r *ContentRouter) statsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, r.pipe.Statistics())
}

// registerHandler godoc
// @Summary Register a content source
// @Accept json
// @Produce json
// @Param source body dto.RegisterSourceRequest true "source configuration"
// @Success 201 {object} dto.RegisterSourceRequest
// @Router /sources [post]
func (r *ContentRouter) registerHandler(c echo.Context) error {
	var req dto.RegisterSourceRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	src, err := req.ToSource()
	if err != nil {
		return err
	}

	if err := r.pipe.AddSource(src, r.fetchers(req)); err != nil {
		return apperr.NewValidationWrap("failed to register source", err)
	}

	return c.JSON(http.StatusCreated, req)
}

// removeHandler godoc
// @Summary Deregister a content source
// @Param id path string true "source id"
// @Success 204
// @Router /sources/{id} [delete]
func (r *ContentRouter) removeHandler(c echo.Context) error {
	if !r.pipe.RemoveSource(c.Param("id")) {
		return apperr.NewNotFound("source not found: " + c.Param("id"))
	}
	return c.NoContent(http.StatusNoContent)
}
