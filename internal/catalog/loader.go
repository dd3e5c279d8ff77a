package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/steamhub/ingest/internal/apperr"
	"github.com/steamhub/ingest/internal/domain"
)

// Catalogue is the YAML document operators supply to bootstrap sources.
type Catalogue struct {
	Sources []SourceSpec `yaml:"sources"`
}

type SourceSpec struct {
	SourceID          string   `yaml:"sourceId"`
	Name              string   `yaml:"name"`
	URL               string   `yaml:"url"`
	Kind              string   `yaml:"kind"`
	Domains           []string `yaml:"domains"`
	PollIntervalHours int      `yaml:"pollIntervalHours"`
	Tier              string   `yaml:"tier"`
}

type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{reader: reader}
}

// Load decodes and validates a catalogue, returning ready-to-register
// source configurations.
func (l *Loader) Load() ([]domain.ContentSource, error) {
	decoder := yaml.NewDecoder(l.reader)
	var cat Catalogue
	if err := decoder.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}

	sources := make([]domain.ContentSource, 0, len(cat.Sources))
	for i, spec := range cat.Sources {
		src, err := spec.toSource()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// LoadFile loads a catalogue from a YAML file on disk.
func LoadFile(path string) ([]domain.ContentSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue %s: %w", path, err)
	}
	defer f.Close()
	return NewLoader(f).Load()
}

func (s SourceSpec) toSource() (domain.ContentSource, error) {
	if s.SourceID == "" {
		return domain.ContentSource{}, apperr.NewValidation("sourceId is required")
	}
	if s.Name == "" {
		return domain.ContentSource{}, apperr.NewValidation("name is required")
	}
	kind := domain.SourceKind(s.Kind)
	if !kind.Valid() {
		return domain.ContentSource{}, apperr.NewValidation("unknown source kind: " + s.Kind)
	}
	tier := domain.Tier(s.Tier)
	if !tier.Valid() {
		return domain.ContentSource{}, apperr.NewValidation("unknown tier: " + s.Tier)
	}
	if s.PollIntervalHours <= 0 {
		return domain.ContentSource{}, apperr.NewValidation("pollIntervalHours must be positive")
	}

	return domain.ContentSource{
		SourceID:          s.SourceID,
		Name:              s.Name,
		URL:               s.URL,
		Kind:              kind,
		Domains:           s.Domains,
		PollIntervalHours: s.PollIntervalHours,
		Tier:              tier,
	}, nil
}
