package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

func testSource(id string, tier domain.Tier) domain.ContentSource {
	return domain.ContentSource{
		SourceID:          id,
		Name:              id,
		URL:               "https://example.com/" + id,
		Kind:              domain.KindNews,
		Domains:           []string{"science"},
		PollIntervalHours: 1,
		Tier:              tier,
	}
}

func startPipeline(t *testing.T, p *Pipeline) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = p.Run(ctx) }()
}

func TestPipeline_IngestAndQuery(t *testing.T) {
	p := New(WithCooldown(10 * time.Millisecond))

	fetcher := fetch.NewStaticFetcher(
		fetch.Item{
			Title:       "Breakthrough Quantum Discovery",
			Content:     "A breakthrough discovery in quantum physics research: the study confirms the theory.",
			URL:         "https://example.com/quantum",
			PublishDate: time.Now(),
		},
		fetch.Item{
			Title:       "Minor Update",
			Content:     "routine notes",
			URL:         "https://example.com/minor",
			PublishDate: time.Now().AddDate(0, 0, -40),
		},
	)

	require.NoError(t, p.AddSource(testSource("journal", domain.TierHigh), fetcher))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		return p.Statistics().SuccessfulIngestions == 2
	}, waitFor, tick)

	recent := p.RecentContent(24*time.Hour, "", 0)
	require.Len(t, recent, 2)

	// Non-increasing in priority, quantum item first.
	assert.Equal(t, "Breakthrough Quantum Discovery", recent[0].Title)
	assert.GreaterOrEqual(t, recent[0].PriorityScore, recent[1].PriorityScore)
	assert.GreaterOrEqual(t, recent[0].PriorityScore, 0.9)
	assert.Contains(t, recent[0].DetectedDomains, "science")

	science := p.RecentContent(24*time.Hour, "science", 0)
	require.Len(t, science, 1)

	stats := p.Statistics()
	assert.Equal(t, 2, stats.TotalIngested)
	assert.Equal(t, 0, stats.DuplicateContent)
	assert.Equal(t, 1, stats.ActiveSources)
	require.Contains(t, stats.SourcePerformance, "journal")
	assert.Equal(t, 2, stats.SourcePerformance["journal"].ContentIngested)
	assert.NotNil(t, stats.SourcePerformance["journal"].LastChecked)
	assert.Equal(t, 1.0, stats.SourcePerformance["journal"].SuccessRate)
}

func TestPipeline_DeduplicatesSameDay(t *testing.T) {
	p := New()

	item := fetch.Item{
		Title:       "Repeated Story",
		Content:     "same text",
		URL:         "https://example.com/repeat",
		PublishDate: time.Now(),
	}
	require.NoError(t, p.AddSource(testSource("feed", domain.TierMedium), fetch.NewStaticFetcher(item, item)))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		s := p.Statistics()
		return s.SuccessfulIngestions == 1 && s.DuplicateContent == 1
	}, waitFor, tick)

	assert.Len(t, p.RecentContent(24*time.Hour, "", 0), 1)
}

func TestPipeline_DistinctURLsAreDistinctItems(t *testing.T) {
	p := New()

	require.NoError(t, p.AddSource(testSource("feed", domain.TierMedium), fetch.NewStaticFetcher(
		fetch.Item{Title: "Same Title", URL: "https://example.com/a", PublishDate: time.Now()},
		fetch.Item{Title: "Same Title", URL: "https://example.com/b", PublishDate: time.Now()},
	)))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		return p.Statistics().SuccessfulIngestions == 2
	}, waitFor, tick)

	recent := p.RecentContent(24*time.Hour, "", 0)
	require.Len(t, recent, 2)
	assert.NotEqual(t, recent[0].ContentID, recent[1].ContentID)
}

func TestPipeline_FailingSourceIsolation(t *testing.T) {
	p := New(WithCooldown(5 * time.Millisecond))

	broken := fetch.FetcherFunc(func(ctx context.Context, src domain.ContentSource) ([]fetch.Item, error) {
		return nil, errors.New("feed unreachable")
	})
	healthy := fetch.NewStaticFetcher(
		fetch.Item{Title: "Healthy Item", URL: "https://example.com/ok", PublishDate: time.Now()},
	)

	require.NoError(t, p.AddSource(testSource("broken", domain.TierHigh), broken))
	require.NoError(t, p.AddSource(testSource("healthy", domain.TierHigh), healthy))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		s := p.Statistics()
		return s.SuccessfulIngestions == 1 && s.FailedFetches >= 3
	}, waitFor, tick)

	recent := p.RecentContent(24*time.Hour, "", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Healthy Item", recent[0].Title)

	stats := p.Statistics()
	assert.Less(t, stats.SourcePerformance["broken"].SuccessRate, 1.0)
	assert.Equal(t, 1.0, stats.SourcePerformance["healthy"].SuccessRate)
}

func TestPipeline_FetchTimeoutIsAFailedCycle(t *testing.T) {
	p := New(WithFetchTimeout(10*time.Millisecond), WithCooldown(time.Hour))

	hung := fetch.FetcherFunc(func(ctx context.Context, src domain.ContentSource) ([]fetch.Item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	require.NoError(t, p.AddSource(testSource("hung", domain.TierLow), hung))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		s := p.Statistics()
		return s.FailedFetches == 1 &&
			s.SourcePerformance["hung"].SuccessRate < 1.0
	}, waitFor, tick)
}

func TestPipeline_RemoveSource(t *testing.T) {
	p := New()

	require.NoError(t, p.AddSource(testSource("transient", domain.TierMedium), fetch.NewStaticFetcher(
		fetch.Item{Title: "Kept Item", URL: "https://example.com/kept", PublishDate: time.Now()},
	)))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		return p.Statistics().SuccessfulIngestions == 1
	}, waitFor, tick)

	assert.True(t, p.RemoveSource("transient"))
	assert.False(t, p.RemoveSource("transient"), "second removal is a no-op")

	stats := p.Statistics()
	assert.Equal(t, 0, stats.ActiveSources)
	assert.NotContains(t, stats.SourcePerformance, "transient")

	// Already-ingested content from the removed source stays queryable.
	recent := p.RecentContent(24*time.Hour, "", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Kept Item", recent[0].Title)
}

func TestPipeline_ReRegisterPreservesHealth(t *testing.T) {
	p := New(WithCooldown(5 * time.Millisecond))

	broken := fetch.FetcherFunc(func(ctx context.Context, src domain.ContentSource) ([]fetch.Item, error) {
		return nil, errors.New("boom")
	})
	require.NoError(t, p.AddSource(testSource("flaky", domain.TierLow), broken))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		return p.Statistics().SourcePerformance["flaky"].SuccessRate < 0.95
	}, waitFor, tick)
	degraded := p.Statistics().SourcePerformance["flaky"].SuccessRate

	updated := testSource("flaky", domain.TierUrgent)
	require.NoError(t, p.AddSource(updated, broken))

	stats := p.Statistics()
	assert.LessOrEqual(t, stats.SourcePerformance["flaky"].SuccessRate, degraded,
		"re-registering must not reset the rolling success rate")
	assert.Equal(t, 1, stats.ActiveSources)
}

func TestPipeline_MalformedItemIsDroppedNotTheBatch(t *testing.T) {
	p := New()

	require.NoError(t, p.AddSource(testSource("mixed", domain.TierMedium), fetch.NewStaticFetcher(
		fetch.Item{Title: "", URL: "https://example.com/untitled", PublishDate: time.Now()},
		fetch.Item{Title: "Valid Item", URL: "https://example.com/valid", PublishDate: time.Now()},
	)))
	startPipeline(t, p)

	require.Eventually(t, func() bool {
		return p.Statistics().SuccessfulIngestions == 1
	}, waitFor, tick)

	recent := p.RecentContent(24*time.Hour, "", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "Valid Item", recent[0].Title)

	// The cycle still counts as a success for the source.
	assert.Equal(t, 1.0, p.Statistics().SourcePerformance["mixed"].SuccessRate)
}
