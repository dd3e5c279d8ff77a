package pipeline

import (
	"sync"
	"time"

	"github.com/steamhub/ingest/pkg/utils"
)

// Stats is a point-in-time snapshot of pipeline progress. Numbers are
// best-effort by design: a misbehaving source shows up as a lower success
// rate and fewer attributed items, never as an error on this surface.
type Stats struct {
	TotalIngested        int                    `json:"totalIngested"`
	SuccessfulIngestions int                    `json:"successfulIngestions"`
	FailedFetches        int                    `json:"failedFetches"`
	DuplicateContent     int                    `json:"duplicateContent"`
	AvgProcessingSeconds float64                `json:"avgProcessingSeconds"`
	ActiveSources        int                    `json:"activeSources"`
	ContentInQueue       int                    `json:"contentInQueue"`
	DomainsDetected      map[string]int         `json:"domainsDetected"`
	SourcePerformance    map[string]SourceStats `json:"sourcePerformance"`
}

// SourceStats is the per-source slice of the statistics surface.
type SourceStats struct {
	Name            string     `json:"name"`
	SuccessRate     float64    `json:"successRate"`
	ContentIngested int        `json:"contentIngested"`
	LastChecked     *time.Time `json:"lastChecked,omitempty"`
}

type counters struct {
	mu             sync.Mutex
	totalIngested  int
	successful     int
	failedFetches  int
	duplicates     int
	processingTime time.Duration
}

func (c *counters) addSuccess(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalIngested++
	c.successful++
	c.processingTime += d
}

func (c *counters) addDuplicate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duplicates++
}

func (c *counters) addFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failedFetches++
}

// Statistics assembles the aggregate snapshot: counters, queue depth,
// per-source performance and the domain distribution over everything
// ingested so far.
func (p *Pipeline) Statistics() Stats {
	p.stats.mu.Lock()
	s := Stats{
		TotalIngested:        p.stats.totalIngested,
		SuccessfulIngestions: p.stats.successful,
		FailedFetches:        p.stats.failedFetches,
		DuplicateContent:     p.stats.duplicates,
	}
	if p.stats.successful > 0 {
		avg := p.stats.processingTime.Seconds() / float64(p.stats.successful)
		s.AvgProcessingSeconds = utils.RoundDecimal(avg, 6)
	}
	p.stats.mu.Unlock()

	s.ContentInQueue = len(p.queue)
	s.DomainsDetected = p.store.DomainDistribution()

	p.mu.Lock()
	s.ActiveSources = len(p.sources)
	s.SourcePerformance = make(map[string]SourceStats, len(p.sources))
	for id, entry := range p.sources {
		s.SourcePerformance[id] = SourceStats{
			Name:            entry.src.Name,
			SuccessRate:     utils.RoundDecimal(entry.src.SuccessRate, 4),
			ContentIngested: p.store.CountBySource(id),
			LastChecked:     entry.src.LastChecked,
		}
	}
	p.mu.Unlock()

	return s
}
