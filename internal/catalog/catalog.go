// Package catalog holds source configurations: a built-in seed list and a
// YAML loader for operator-supplied catalogues.
package catalog

import (
	"github.com/steamhub/ingest/internal/domain"
)

// DefaultSources is the built-in bootstrap catalogue covering the STEAM
// subject areas. It is a convenience seed, not required for correctness.
func DefaultSources() []domain.ContentSource {
	return []domain.ContentSource{
		{
			SourceID:          "nature_rss",
			Name:              "Nature Journal",
			URL:               "https://www.nature.com/nature.rss",
			Kind:              domain.KindJournal,
			Domains:           []string{"science", "technology"},
			PollIntervalHours: 4,
			Tier:              domain.TierHigh,
		},
		{
			SourceID:          "science_mag_rss",
			Name:              "Science Magazine",
			URL:               "https://www.sciencemag.org/rss/current.xml",
			Kind:              domain.KindJournal,
			Domains:           []string{"science", "technology", "engineering"},
			PollIntervalHours: 6,
			Tier:              domain.TierHigh,
		},
		{
			SourceID:          "ieee_spectrum",
			Name:              "IEEE Spectrum",
			URL:               "https://spectrum.ieee.org/feeds/blog/tech-talk.rss",
			Kind:              domain.KindNews,
			Domains:           []string{"technology", "engineering"},
			PollIntervalHours: 8,
			Tier:              domain.TierMedium,
		},
		{
			SourceID:          "nasa_news",
			Name:              "NASA News",
			URL:               "https://www.nasa.gov/rss/dyn/breaking_news.rss",
			Kind:              domain.KindAnnouncement,
			Domains:           []string{"science", "technology", "engineering"},
			PollIntervalHours: 12,
			Tier:              domain.TierHigh,
		},
		{
			SourceID:          "arxiv_cs",
			Name:              "arXiv Computer Science",
			URL:               "http://export.arxiv.org/rss/cs",
			Kind:              domain.KindResearchPaper,
			Domains:           []string{"technology", "mathematics"},
			PollIntervalHours: 24,
			Tier:              domain.TierMedium,
		},
		{
			SourceID:          "ams_notices",
			Name:              "AMS Notices",
			URL:               "https://www.ams.org/journals/notices/notices.rss",
			Kind:              domain.KindJournal,
			Domains:           []string{"mathematics"},
			PollIntervalHours: 48,
			Tier:              domain.TierMedium,
		},
	}
}
