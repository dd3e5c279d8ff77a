package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamhub/ingest/internal/domain"
)

func TestLoader_Load(t *testing.T) {
	yml := `
sources:
  - sourceId: nature_rss
    name: Nature Journal
    url: https://www.nature.com/nature.rss
    kind: journal
    domains: [science, technology]
    pollIntervalHours: 4
    tier: high
  - sourceId: campus_events
    name: Campus Events
    url: https://example.edu/events
    kind: educational
    domains: [arts]
    pollIntervalHours: 24
    tier: low
`
	sources, err := NewLoader(strings.NewReader(yml)).Load()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "nature_rss", sources[0].SourceID)
	assert.Equal(t, domain.KindJournal, sources[0].Kind)
	assert.Equal(t, domain.TierHigh, sources[0].Tier)
	assert.Equal(t, 4, sources[0].PollIntervalHours)
	assert.Equal(t, []string{"science", "technology"}, sources[0].Domains)

	assert.Equal(t, domain.KindEducational, sources[1].Kind)
	assert.Equal(t, domain.TierLow, sources[1].Tier)
}

func TestLoader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{
			name: "missing id",
			yml: `
sources:
  - name: No ID
    kind: news
    pollIntervalHours: 4
    tier: low
`,
		},
		{
			name: "unknown kind",
			yml: `
sources:
  - sourceId: x
    name: X
    kind: podcast
    pollIntervalHours: 4
    tier: low
`,
		},
		{
			name: "unknown tier",
			yml: `
sources:
  - sourceId: x
    name: X
    kind: news
    pollIntervalHours: 4
    tier: whenever
`,
		},
		{
			name: "zero interval",
			yml: `
sources:
  - sourceId: x
    name: X
    kind: news
    pollIntervalHours: 0
    tier: low
`,
		},
		{
			name: "not yaml",
			yml:  `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(strings.NewReader(tt.yml)).Load()
			assert.Error(t, err)
		})
	}
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.NotEmpty(t, sources)

	seen := make(map[string]bool)
	for _, s := range sources {
		assert.False(t, seen[s.SourceID], "duplicate source id %s", s.SourceID)
		seen[s.SourceID] = true
		assert.True(t, s.Kind.Valid())
		assert.True(t, s.Tier.Valid())
		assert.Positive(t, s.PollIntervalHours)
	}
}
