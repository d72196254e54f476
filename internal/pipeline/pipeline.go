// Package pipeline runs the per-article processing loop: extraction,
// duplicate decision, persistence, registry update.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/crimewatch/internal/config"
	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/telemetry"
)

// Processor turns a raw article into a structured record.
type Processor interface {
	Process(art domain.RawArticle) (*domain.Record, error)
}

// Fetcher harvests raw articles for one site.
type Fetcher interface {
	FetchSite(ctx context.Context, site config.Site) ([]domain.RawArticle, error)
}

// RecordStore appends accepted records.
type RecordStore interface {
	Append(ctx context.Context, rec *domain.Record) error
}

// Stats summarizes one run.
type Stats struct {
	Fetched       int `json:"fetched"`
	Processed     int `json:"processed"`
	Saved         int `json:"saved"`
	ExactSkipped  int `json:"exact_duplicates_skipped"`
	SimilarSaved  int `json:"similar_cross_source_saved"`
	NoFingerprint int `json:"saved_without_fingerprint"`
	Failures      int `json:"failures"`
}

// Pipeline owns the duplicate registry and processes articles one at
// a time, in discovery order. The registry is updated immediately
// after each accepted decision, so article N catches a duplicate of
// article N-1 within the same run.
type Pipeline struct {
	fetcher   Fetcher
	processor Processor
	policy    *dedup.Policy
	registry  *dedup.Registry
	store     RecordStore
	metrics   *telemetry.Metrics
	log       logger.Logger

	// mu serializes decisions: the scheduled run and the HTTP ingest
	// path must never interleave registry reads and writes.
	mu sync.Mutex
}

// New creates a pipeline. metrics may be nil (CLI one-shot runs).
func New(
	fetcher Fetcher,
	processor Processor,
	policy *dedup.Policy,
	registry *dedup.Registry,
	store RecordStore,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		processor: processor,
		policy:    policy,
		registry:  registry,
		store:     store,
		metrics:   metrics,
		log:       log,
	}
}

// Run processes every configured site in order. A site failure is
// logged and the run continues; a cancelled context stops it.
func (p *Pipeline) Run(ctx context.Context, sites []config.Site) (Stats, error) {
	start := time.Now()
	var stats Stats

	for _, site := range sites {
		articles, err := p.fetcher.FetchSite(ctx, site)
		if err != nil {
			p.log.Error("site fetch failed",
				logger.String("site", site.Name),
				logger.Error(err),
			)
			continue
		}
		stats.Fetched += len(articles)
		if p.metrics != nil {
			p.metrics.ArticlesFetched.WithLabelValues(site.Name).Add(float64(len(articles)))
		}

		for _, art := range articles {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			p.handle(ctx, art, &stats)
		}
	}

	elapsed := time.Since(start)
	if p.metrics != nil {
		p.metrics.RunDuration.Observe(elapsed.Seconds())
	}
	p.log.Info("scrape run complete",
		logger.Int("fetched", stats.Fetched),
		logger.Int("saved", stats.Saved),
		logger.Int("exact_duplicates_skipped", stats.ExactSkipped),
		logger.Int("similar_cross_source", stats.SimilarSaved),
		logger.Int("failures", stats.Failures),
		logger.Duration("elapsed", elapsed),
	)
	return stats, nil
}

func (p *Pipeline) handle(ctx context.Context, art domain.RawArticle, stats *Stats) {
	start := time.Now()
	rec, decision, err := p.Ingest(ctx, art)
	if p.metrics != nil {
		p.metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		stats.Failures++
		if p.metrics != nil {
			p.metrics.ProcessingFailures.Inc()
		}
		p.log.Error("article dropped",
			logger.String("url", art.URL),
			logger.Error(err),
		)
		return
	}

	stats.Processed++
	if p.metrics != nil {
		p.metrics.ArticlesProcessed.Inc()
	}
	switch decision.Status {
	case dedup.StatusDuplicateExact:
		stats.ExactSkipped++
		p.log.Info("exact duplicate skipped",
			logger.String("url", art.URL),
			logger.String("source", art.Source),
		)
	case dedup.StatusSimilarCrossSource:
		stats.Saved++
		stats.SimilarSaved++
		p.log.Info("similar cross-source article saved with note",
			logger.String("url", art.URL),
			logger.String("headline", rec.Headline),
		)
	case dedup.StatusNewNoFingerprint:
		stats.Saved++
		stats.NoFingerprint++
	default:
		stats.Saved++
	}
}

// Ingest processes one article end to end: extract, decide, persist,
// register. Hashes are registered only after a successful persist so
// a failed write cannot leave phantom fingerprints behind. Exact
// duplicates return the record and decision without persisting.
func (p *Pipeline) Ingest(ctx context.Context, art domain.RawArticle) (*domain.Record, dedup.Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, err := p.processor.Process(art)
	if err != nil {
		return nil, dedup.Decision{}, fmt.Errorf("process article: %w", err)
	}

	// Fingerprint over the same normalized fields the store reloads at
	// startup, so decisions survive a restart unchanged.
	decision := p.policy.Decide(rec.Headline, rec.FullText, rec.Source, p.registry)
	if p.metrics != nil {
		p.metrics.Decisions.WithLabelValues(string(decision.Status)).Inc()
	}
	if decision.HasFingerprint {
		rec.ContentHash = decision.Fingerprint.ContentHash
		rec.SimilarityHash = decision.Fingerprint.SimilarityHash
	}
	rec.DuplicateNote = decision.Note

	if !decision.Persist() {
		return rec, decision, nil
	}

	if err := p.store.Append(ctx, rec); err != nil {
		return nil, decision, fmt.Errorf("persist record: %w", err)
	}
	if p.metrics != nil {
		p.metrics.RecordsSaved.Inc()
	}
	if decision.RegisterHashes() {
		p.registry.Register(decision.Fingerprint)
	}
	return rec, decision, nil
}
