// Package priority scores ingested items for downstream ranking. The
// score is a clamped sum of independently bounded heuristic terms over a
// base of 0.5, so it always lands in [0.5, 1.0].
package priority

import (
	"strings"
	"time"

	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
	"github.com/steamhub/ingest/pkg/utils"
)

const (
	baseScore = 0.5

	tierWeight      = 0.3
	freshnessWeight = 0.2
	domainWeight    = 0.2

	freshnessWindowDays = 30

	keywordHitValue = 0.1
	keywordCap      = 0.3

	citationCap     = 0.2
	citationDivisor = 100
)

// highPriorityKeywords flag items worth surfacing regardless of source.
var highPriorityKeywords = []string{
	"breakthrough", "discovery", "innovation", "urgent", "critical",
	"revolutionary", "first", "new", "novel", "unprecedented",
}

var tierMultiplier = map[domain.Tier]float64{
	domain.TierUrgent: 1.0,
	domain.TierHigh:   0.8,
	domain.TierMedium: 0.6,
	domain.TierLow:    0.4,
}

var domainWeights = map[string]float64{
	"science":     0.9,
	"technology":  0.8,
	"engineering": 0.7,
	"mathematics": 0.7,
	"arts":        0.6,
}

// unknownDomainWeight applies to detected labels outside the weight table.
const unknownDomainWeight = 0.5

type Evaluator struct {
	now func() time.Time
}

func NewEvaluator() *Evaluator {
	return &Evaluator{now: time.Now}
}

// NewEvaluatorAt pins the evaluator's clock, for deterministic scoring in
// tests.
func NewEvaluatorAt(now func() time.Time) *Evaluator {
	return &Evaluator{now: now}
}

// Evaluate computes the priority score for one item: source tier,
// publish-date freshness, high-priority keyword salience, detected-domain
// relevance and a citation bonus, capped at 1.0.
func (e *Evaluator) Evaluate(item fetch.Item, src domain.ContentSource, detected []string) float64 {
	score := baseScore

	score += tierMultiplier[src.Tier] * tierWeight

	score += e.freshness(item.PublishDate) * freshnessWeight

	score += min(keywordCap, float64(keywordHits(item.Content))*keywordHitValue)

	if len(detected) > 0 {
		best := 0.0
		for _, d := range detected {
			w, ok := domainWeights[d]
			if !ok {
				w = unknownDomainWeight
			}
			if w > best {
				best = w
			}
		}
		score += best * domainWeight
	}

	if item.CitationCount > 0 {
		score += min(citationCap, float64(item.CitationCount)/citationDivisor)
	}

	return min(1.0, score)
}

// freshness decays linearly from 1 to 0 over the freshness window; items
// older than the window contribute nothing, never a penalty.
func (e *Evaluator) freshness(published time.Time) float64 {
	if published.IsZero() {
		published = e.now()
	}
	daysOld := max(0, e.now().Sub(published).Hours()/24)
	return utils.Clamp01(1 - daysOld/freshnessWindowDays)
}

func keywordHits(content string) int {
	lower := strings.ToLower(content)
	hits := 0
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}
