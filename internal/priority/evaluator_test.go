package priority

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestEvaluate_Bounds(t *testing.T) {
	e := NewEvaluatorAt(fixedNow)
	rng := rand.New(rand.NewSource(7))

	tiers := []domain.Tier{domain.TierUrgent, domain.TierHigh, domain.TierMedium, domain.TierLow}
	labels := []string{"science", "technology", "engineering", "arts", "mathematics", "folklore"}

	for i := 0; i < 500; i++ {
		src := domain.ContentSource{Tier: tiers[rng.Intn(len(tiers))]}

		var content strings.Builder
		for j := 0; j < rng.Intn(12); j++ {
			content.WriteString(highPriorityKeywords[rng.Intn(len(highPriorityKeywords))])
			content.WriteByte(' ')
		}

		item := fetch.Item{
			Content:       content.String(),
			PublishDate:   fixedNow().AddDate(0, 0, -rng.Intn(120)),
			CitationCount: rng.Intn(500),
		}

		var detected []string
		for j := 0; j < rng.Intn(4); j++ {
			detected = append(detected, labels[rng.Intn(len(labels))])
		}

		score := e.Evaluate(item, src, detected)
		assert.GreaterOrEqual(t, score, 0.5)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestEvaluate_HighPriorityScenario(t *testing.T) {
	e := NewEvaluatorAt(fixedNow)

	src := domain.ContentSource{SourceID: "journal", Tier: domain.TierHigh}
	item := fetch.Item{
		Title:         "Breakthrough Quantum Discovery",
		Content:       "A breakthrough discovery in quantum physics research: the study confirms the theory.",
		PublishDate:   fixedNow(),
		CitationCount: 50,
	}

	score := e.Evaluate(item, src, []string{"science"})
	assert.GreaterOrEqual(t, score, 0.9)
	assert.LessOrEqual(t, score, 1.0)
}

func TestEvaluate_LowTierStaleScenario(t *testing.T) {
	e := NewEvaluatorAt(fixedNow)

	src := domain.ContentSource{SourceID: "backlog", Tier: domain.TierLow}
	item := fetch.Item{
		Title:       "Archive notes",
		Content:     "nothing remarkable here",
		PublishDate: fixedNow().AddDate(0, 0, -25),
	}

	score := e.Evaluate(item, src, nil)
	assert.GreaterOrEqual(t, score, 0.5)
	assert.Less(t, score, 0.66)
}

func TestEvaluate_Terms(t *testing.T) {
	e := NewEvaluatorAt(fixedNow)

	t.Run("keyword salience caps at 0.3", func(t *testing.T) {
		few := e.Evaluate(fetch.Item{
			Content:     "breakthrough discovery innovation",
			PublishDate: fixedNow().AddDate(0, 0, -31),
		}, domain.ContentSource{Tier: domain.TierLow}, nil)
		many := e.Evaluate(fetch.Item{
			Content:     strings.Join(highPriorityKeywords, " "),
			PublishDate: fixedNow().AddDate(0, 0, -31),
		}, domain.ContentSource{Tier: domain.TierLow}, nil)
		assert.InDelta(t, 0.5+0.4*0.3+0.3, few, 1e-9)
		assert.InDelta(t, few, many, 1e-9)
	})

	t.Run("items older than the window lose all freshness", func(t *testing.T) {
		old := e.Evaluate(fetch.Item{
			PublishDate: fixedNow().AddDate(0, 0, -31),
		}, domain.ContentSource{Tier: domain.TierMedium}, nil)
		older := e.Evaluate(fetch.Item{
			PublishDate: fixedNow().AddDate(0, 0, -300),
		}, domain.ContentSource{Tier: domain.TierMedium}, nil)
		assert.InDelta(t, old, older, 1e-9)
		assert.InDelta(t, 0.5+0.6*0.3, old, 1e-9)
	})

	t.Run("domain relevance takes the strongest detected label", func(t *testing.T) {
		item := fetch.Item{PublishDate: fixedNow().AddDate(0, 0, -31)}
		src := domain.ContentSource{Tier: domain.TierLow}

		arts := e.Evaluate(item, src, []string{"arts"})
		both := e.Evaluate(item, src, []string{"arts", "science"})
		assert.InDelta(t, 0.5+0.4*0.3+0.6*0.2, arts, 1e-9)
		assert.InDelta(t, 0.5+0.4*0.3+0.9*0.2, both, 1e-9)
	})

	t.Run("citation bonus caps at 0.2", func(t *testing.T) {
		item := fetch.Item{PublishDate: fixedNow().AddDate(0, 0, -31), CitationCount: 10}
		src := domain.ContentSource{Tier: domain.TierLow}

		some := e.Evaluate(item, src, nil)
		assert.InDelta(t, 0.5+0.4*0.3+0.1, some, 1e-9)

		item.CitationCount = 100000
		capped := e.Evaluate(item, src, nil)
		assert.InDelta(t, 0.5+0.4*0.3+0.2, capped, 1e-9)
	})
}
