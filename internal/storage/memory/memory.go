// Package memory is the pipeline's own append-only content store. Writes
// come exclusively from the single consumer goroutine; the lock exists so
// the query surface can read concurrently with ingestion.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/steamhub/ingest/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	content []domain.RawContent
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(content domain.RawContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = append(s.content, content)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content)
}

// Recent returns items ingested at or after the cutoff, optionally
// restricted to one detected domain and a minimum priority, ordered by
// priority score descending with ingestion recency breaking ties.
func (s *Store) Recent(cutoff time.Time, domainFilter string, minPriority float64) []domain.RawContent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.RawContent
	for _, c := range s.content {
		if c.IngestionTimestamp.Before(cutoff) {
			continue
		}
		if domainFilter != "" && !containsDomain(c.DetectedDomains, domainFilter) {
			continue
		}
		if c.PriorityScore < minPriority {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].PriorityScore != matched[j].PriorityScore {
			return matched[i].PriorityScore > matched[j].PriorityScore
		}
		return matched[i].IngestionTimestamp.After(matched[j].IngestionTimestamp)
	})

	return matched
}

// DomainDistribution counts every detected domain label across all
// ingested content to date.
func (s *Store) DomainDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[string]int)
	for _, c := range s.content {
		for _, d := range c.DetectedDomains {
			dist[d]++
		}
	}
	return dist
}

// CountBySource counts ingested items attributed to the given source.
func (s *Store) CountBySource(sourceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.content {
		if c.SourceID == sourceID {
			n++
		}
	}
	return n
}

func containsDomain(domains []string, want string) bool {
	for _, d := range domains {
		if d == want {
			return true
		}
	}
	return false
}
