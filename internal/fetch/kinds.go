package fetch

import "github.com/steamhub/ingest/internal/domain"

// DefaultForKind picks the stock adapter for a source kind. Feed-shaped
// kinds poll RSS; the rest fall back to generic page extraction. Callers
// can always inject a custom Fetcher instead.
func DefaultForKind(kind domain.SourceKind) Fetcher {
	switch kind {
	case domain.KindJournal, domain.KindNews, domain.KindResearchPaper, domain.KindAnnouncement:
		return NewRSSFetcher()
	default:
		return NewGenericFetcher()
	}
}
