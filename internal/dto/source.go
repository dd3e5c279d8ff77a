package dto

import (
	"github.com/steamhub/ingest/internal/apperr"
	"github.com/steamhub/ingest/internal/domain"
)

// RegisterSourceRequest is the JSON body for source registration.
type RegisterSourceRequest struct {
	SourceID          string   `json:"sourceId"`
	Name              string   `json:"name"`
	URL               string   `json:"url"`
	Kind              string   `json:"kind"`
	Domains           []string `json:"domains"`
	PollIntervalHours int      `json:"pollIntervalHours"`
	Tier              string   `json:"tier"`
}

func (r *RegisterSourceRequest) ToSource() (domain.ContentSource, error) {
	if r.SourceID == "" {
		return domain.ContentSource{}, apperr.NewValidation("sourceId is required")
	}
	if r.Name == "" {
		return domain.ContentSource{}, apperr.NewValidation("name is required")
	}
	kind := domain.SourceKind(r.Kind)
	if !kind.Valid() {
		return domain.ContentSource{}, apperr.NewValidation("unknown source kind: " + r.Kind)
	}
	tier := domain.Tier(r.Tier)
	if !tier.Valid() {
		return domain.ContentSource{}, apperr.NewValidation("unknown tier: " + r.Tier)
	}
	if r.PollIntervalHours <= 0 {
		return domain.ContentSource{}, apperr.NewValidation("pollIntervalHours must be positive")
	}

	return domain.ContentSource{
		SourceID:          r.SourceID,
		Name:              r.Name,
		URL:               r.URL,
		Kind:              kind,
		Domains:           r.Domains,
		PollIntervalHours: r.PollIntervalHours,
		Tier:              tier,
	}, nil
}
