// Package pipeline orchestrates content ingestion: one watcher goroutine
// per registered source polling on its own schedule, one consumer
// goroutine draining the shared queue into the append-only store.
//
// The consumer is the only goroutine that touches the dedup set, the
// store and the aggregate counters, so cross-source interleaving is safe
// without locks on the hot path. Producers hand over fully-constructed,
// immutable items through the queue and nothing else.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/steamhub/ingest/internal/classify"
	"github.com/steamhub/ingest/internal/domain"
	"github.com/steamhub/ingest/internal/fetch"
	"github.com/steamhub/ingest/internal/priority"
	"github.com/steamhub/ingest/internal/storage"
	"github.com/steamhub/ingest/internal/storage/memory"
)

const (
	defaultQueueSize    = 1024
	defaultCooldown     = 5 * time.Minute
	defaultFetchTimeout = 2 * time.Minute

	// consumerErrorPause keeps a persistently failing consumer from
	// spinning; the failing item is lost (at-most-once).
	consumerErrorPause = time.Second
)

type sourceEntry struct {
	src     *domain.ContentSource
	fetcher fetch.Fetcher
	cancel  context.CancelFunc
}

type Pipeline struct {
	mu      sync.Mutex
	sources map[string]*sourceEntry

	queue      chan domain.RawContent
	store      *memory.Store
	archive    storage.Appender
	classifier *classify.Classifier
	evaluator  *priority.Evaluator

	// dedup is owned by the consumer goroutine; counters synchronize
	// internally because watchers report fetch failures too.
	dedup map[string]struct{}
	stats counters

	cooldown     time.Duration
	fetchTimeout time.Duration
	queueSize    int
	now          func() time.Time

	runCtx  context.Context
	running bool
}

type Option func(*Pipeline)

// WithQueueSize sets the processing queue capacity. Producers block once
// the queue is full, which is the backpressure this pipeline offers.
func WithQueueSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithCooldown overrides the wait after a failed poll cycle.
func WithCooldown(d time.Duration) Option {
	return func(p *Pipeline) { p.cooldown = d }
}

// WithFetchTimeout bounds a single fetch adapter call; a fetch that blows
// the deadline counts as a failed cycle.
func WithFetchTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.fetchTimeout = d }
}

// WithArchive tees every committed item into an external archive. Archive
// failures are logged, never fatal to ingestion.
func WithArchive(a storage.Appender) Option {
	return func(p *Pipeline) { p.archive = a }
}

// WithClock pins the pipeline's clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		sources:      make(map[string]*sourceEntry),
		store:        memory.NewStore(),
		classifier:   classify.NewClassifier(),
		dedup:        make(map[string]struct{}),
		cooldown:     defaultCooldown,
		fetchTimeout: defaultFetchTimeout,
		queueSize:    defaultQueueSize,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.evaluator = priority.NewEvaluatorAt(p.now)
	p.queue = make(chan domain.RawContent, p.queueSize)

	return p
}

// AddSource registers a source with its fetch capability. Registration is
// idempotent per source id: re-registering overwrites the configuration
// but keeps the health state, and the poll interval of the original
// registration stands. When the pipeline is running a watcher is spawned
// immediately.
func (p *Pipeline) AddSource(src domain.ContentSource, fetcher fetch.Fetcher) error {
	if src.SourceID == "" {
		return fmt.Errorf("source id is required")
	}
	if !src.Kind.Valid() {
		return fmt.Errorf("invalid source kind: %s", src.Kind)
	}
	if !src.Tier.Valid() {
		return fmt.Errorf("invalid source tier: %s", src.Tier)
	}
	if src.PollIntervalHours <= 0 {
		return fmt.Errorf("poll interval must be positive, got %d", src.PollIntervalHours)
	}
	if fetcher == nil {
		return fmt.Errorf("fetcher is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.sources[src.SourceID]; ok {
		existing.src.Name = src.Name
		existing.src.URL = src.URL
		existing.src.Kind = src.Kind
		existing.src.Domains = src.Domains
		existing.src.Tier = src.Tier
		existing.fetcher = fetcher
		slog.Info("source re-registered, health state preserved", "source", src.SourceID)
		return nil
	}

	src.SuccessRate = 1.0
	entry := &sourceEntry{src: &src, fetcher: fetcher}
	p.sources[src.SourceID] = entry

	if p.running {
		p.startWatcher(entry)
	}

	slog.Info("source registered",
		"source", src.SourceID,
		"kind", src.Kind,
		"interval_hours", src.PollIntervalHours,
		"tier", src.Tier,
	)
	return nil
}

// RemoveSource cancels the source's watcher and drops it from the
// registry. Content already ingested from the source stays queryable;
// items of the source still sitting in the queue are consumed normally.
func (p *Pipeline) RemoveSource(sourceID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.sources[sourceID]
	if !ok {
		return false
	}
	if entry.cancel != nil {
		entry.cancel()
	}
	delete(p.sources, sourceID)
	slog.Info("source removed", "source", sourceID)
	return true
}

// Run starts the watchers and the consumer and blocks until ctx is done.
// All loops stop cooperatively at their next suspension point.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already running")
	}
	p.running = true
	p.runCtx = ctx

	for _, entry := range p.sources {
		p.startWatcher(entry)
	}
	n := len(p.sources)
	p.mu.Unlock()

	slog.Info("🛰️ ingestion pipeline started", "sources", n, "queue_size", p.queueSize)

	go p.consume(ctx)

	<-ctx.Done()

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	slog.Info("ingestion pipeline stopped")
	return ctx.Err()
}

// startWatcher spawns the polling loop for one source. Caller holds p.mu.
func (p *Pipeline) startWatcher(entry *sourceEntry) {
	ctx, cancel := context.WithCancel(p.runCtx)
	entry.cancel = cancel
	go p.watch(ctx, entry)
}

// watch is the per-source polling loop. A failure here only ever costs
// this source its cycle and some success rate; other sources and the
// consumer never notice.
func (p *Pipeline) watch(ctx context.Context, entry *sourceEntry) {
	for {
		cycleOK := p.cycle(ctx, entry)
		if ctx.Err() != nil {
			return
		}

		wait := p.nextWait(entry, cycleOK)
		if !sleep(ctx, wait) {
			return
		}
	}
}

// cycle runs one poll iteration and reports whether scheduling should
// proceed normally (true) or back off on the cooldown (false).
func (p *Pipeline) cycle(ctx context.Context, entry *sourceEntry) (ok bool) {
	sourceID := entry.src.SourceID

	defer func() {
		if r := recover(); r != nil {
			slog.Error("source loop panic", "source", sourceID, "panic", r)
			p.mu.Lock()
			entry.src.RecordLoopError()
			p.mu.Unlock()
			ok = false
		}
	}()

	p.mu.Lock()
	due := entry.src.Due(p.now())
	fetcher := entry.fetcher
	src := *entry.src
	p.mu.Unlock()

	if !due {
		return true
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	items, err := fetcher.Fetch(fetchCtx, src)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		slog.Error("fetch failed", "source", sourceID, "error", err)
		p.mu.Lock()
		entry.src.RecordFetchFailure()
		p.mu.Unlock()
		p.stats.addFailure()
		return false
	}

	enqueued := 0
	for _, item := range items {
		content, err := p.normalize(item, src)
		if err != nil {
			// One malformed item never aborts the batch.
			slog.Warn("dropping malformed item", "source", sourceID, "error", err)
			continue
		}
		select {
		case p.queue <- content:
			enqueued++
		case <-ctx.Done():
			return false
		}
	}

	now := p.now()
	p.mu.Lock()
	entry.src.LastChecked = &now
	entry.src.RecordSuccess()
	p.mu.Unlock()

	slog.Debug("poll cycle complete", "source", sourceID, "fetched", len(items), "enqueued", enqueued)
	return true
}

// nextWait picks how long the watcher sleeps: the configured poll
// interval after a clean cycle, the cooldown after a failed one.
func (p *Pipeline) nextWait(entry *sourceEntry, cycleOK bool) time.Duration {
	if !cycleOK {
		return p.cooldown
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return entry.src.PollInterval()
}

// normalize wraps a raw fetch item into a fully-derived RawContent.
func (p *Pipeline) normalize(item fetch.Item, src domain.ContentSource) (domain.RawContent, error) {
	if item.Title == "" {
		return domain.RawContent{}, fmt.Errorf("item has no title")
	}

	now := p.now()
	detected := p.classifier.Detect(item.Content)
	score := p.evaluator.Evaluate(item, src, detected)

	return domain.RawContent{
		ContentID:          domain.ContentID(item.Title, item.URL, now),
		SourceID:           src.SourceID,
		Title:              item.Title,
		Content:            item.Content,
		URL:                item.URL,
		PublishDate:        item.PublishDate,
		Authors:            item.Authors,
		Keywords:           item.Keywords,
		DOI:                item.DOI,
		CitationCount:      item.CitationCount,
		DetectedDomains:    detected,
		PriorityScore:      score,
		IngestionTimestamp: now,
	}, nil
}

// consume is the single consumer loop: dedup, commit, account.
func (p *Pipeline) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case content := <-p.queue:
			if err := p.commit(ctx, content); err != nil {
				slog.Error("failed to commit content", "id", content.ContentID, "error", err)
				if !sleep(ctx, consumerErrorPause) {
					return
				}
			}
		}
	}
}

func (p *Pipeline) commit(ctx context.Context, content domain.RawContent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic committing content: %v", r)
		}
	}()

	start := time.Now()

	if _, dup := p.dedup[content.ContentID]; dup {
		p.stats.addDuplicate()
		slog.Debug("duplicate content dropped", "id", content.ContentID, "title", content.Title)
		return nil
	}
	p.dedup[content.ContentID] = struct{}{}

	p.store.Append(content)

	if p.archive != nil {
		if archiveErr := p.archive.Append(ctx, content); archiveErr != nil {
			slog.Error("archive append failed", "id", content.ContentID, "error", archiveErr)
		}
	}

	p.stats.addSuccess(time.Since(start))

	slog.Info("content ingested",
		"id", content.ContentID,
		"source", content.SourceID,
		"priority", content.PriorityScore,
		"domains", content.DetectedDomains,
	)
	return nil
}

// RecentContent returns items ingested within maxAge, optionally filtered
// by detected domain and minimum priority, ordered by priority score
// descending with ingestion recency breaking ties.
func (p *Pipeline) RecentContent(maxAge time.Duration, domainFilter string, minPriority float64) []domain.RawContent {
	cutoff := p.now().Add(-maxAge)
	return p.store.Recent(cutoff, domainFilter, minPriority)
}

// sleep waits for d or until ctx is done; it reports false on
// cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
