package cmd

import (
	"context"
	"fmt"

	"github.com/jonesrussell/crimewatch/internal/config"
	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/fetch"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/nlp"
	"github.com/jonesrussell/crimewatch/internal/pipeline"
	"github.com/jonesrussell/crimewatch/internal/store"
	"github.com/jonesrussell/crimewatch/internal/telemetry"
)

// app bundles the wired service components shared by the scrape,
// schedule and serve commands.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	store   *store.Store
	pipe    *pipeline.Pipeline
	metrics *telemetry.Metrics
}

// newApp constructs the full service: config, logger, store, duplicate
// registry (bootstrapped from the store), extraction engine, fetcher
// and pipeline. withMetrics registers Prometheus collectors; one-shot
// CLI runs skip them.
func newApp(ctx context.Context, withMetrics bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	st, err := store.Open(ctx, cfg.Store.Path, log)
	if err != nil {
		return nil, err
	}

	recognizer, err := nlp.NewLexicalRecognizer()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build recognizer: %w", err)
	}

	registry := dedup.Bootstrap(ctx, st, log)
	policy := dedup.NewPolicy(dedup.NewFingerprinter())
	processor := nlp.NewProcessor(recognizer, log)
	fetcher := fetch.New(cfg.Fetch, nlp.NewKeywordFilter(), st, log)

	var metrics *telemetry.Metrics
	if withMetrics {
		metrics = telemetry.New(nil)
	}

	pipe := pipeline.New(fetcher, processor, policy, registry, st, metrics, log)
	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		pipe:    pipe,
		metrics: metrics,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("failed to close record store", logger.Error(err))
	}
	_ = a.log.Sync()
}

// sitesToRun resolves the --site flag: empty means every configured
// site.
func (a *app) sitesToRun(siteName string) ([]config.Site, error) {
	if siteName == "" {
		return a.cfg.Sites, nil
	}
	site, err := a.cfg.SiteByName(siteName)
	if err != nil {
		return nil, err
	}
	return []config.Site{site}, nil
}
