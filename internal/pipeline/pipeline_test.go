package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/crimewatch/internal/config"
	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/nlp"
)

// fakeFetcher returns canned articles per site name.
type fakeFetcher struct {
	articles map[string][]domain.RawArticle
	err      error
}

func (f *fakeFetcher) FetchSite(ctx context.Context, site config.Site) ([]domain.RawArticle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles[site.Name], nil
}

// memStore records appended records in order.
type memStore struct {
	records []*domain.Record
	fail    bool
}

func (m *memStore) Append(ctx context.Context, rec *domain.Record) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.records = append(m.records, rec)
	return nil
}

// emptyRecognizer reports no entities.
type emptyRecognizer struct{}

func (emptyRecognizer) Recognize(text string) ([]nlp.Entity, error) { return nil, nil }

func newTestPipeline(fetcher Fetcher, st RecordStore) *Pipeline {
	return New(
		fetcher,
		nlp.NewProcessor(emptyRecognizer{}, logger.NewNop()),
		dedup.NewPolicy(dedup.NewFingerprinter()),
		dedup.NewRegistry(),
		st,
		nil,
		logger.NewNop(),
	)
}

func article(headline, content, source, url string) domain.RawArticle {
	return domain.RawArticle{Headline: headline, Content: content, Source: source, URL: url}
}

func TestRunSkipsExactRepeatWithinRun(t *testing.T) {
	st := &memStore{}
	fetcher := &fakeFetcher{articles: map[string][]domain.RawArticle{
		"tribune": {
			article("Bank robbery downtown", "Police said so", "tribune", "https://t.example/a"),
			article("Bank robbery downtown", "Police said so", "tribune", "https://t.example/a-repost"),
		},
	}}

	p := newTestPipeline(fetcher, st)
	stats, err := p.Run(context.Background(), []config.Site{{Name: "tribune"}})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 1, stats.Saved)
	assert.Equal(t, 1, stats.ExactSkipped)
	require.Len(t, st.records, 1)
	assert.Empty(t, st.records[0].DuplicateNote)
}

func TestRunFlagsCrossSourceRepeat(t *testing.T) {
	st := &memStore{}
	fetcher := &fakeFetcher{articles: map[string][]domain.RawArticle{
		"tribune": {
			article("Bank robbery downtown", "Police said so", "tribune", "https://t.example/a"),
		},
		"gazette": {
			article("Bank robbery downtown", "Police said so", "gazette", "https://g.example/a"),
		},
	}}

	p := newTestPipeline(fetcher, st)
	stats, err := p.Run(context.Background(), []config.Site{{Name: "tribune"}, {Name: "gazette"}})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Saved)
	assert.Equal(t, 1, stats.SimilarSaved)
	require.Len(t, st.records, 2)
	assert.Empty(t, st.records[0].DuplicateNote)
	assert.NotEmpty(t, st.records[1].DuplicateNote)
}

func TestRunSavesArticleWithoutFingerprint(t *testing.T) {
	st := &memStore{}
	fetcher := &fakeFetcher{articles: map[string][]domain.RawArticle{
		"tribune": {
			article("", "body text only", "tribune", "https://t.example/a"),
		},
	}}

	p := newTestPipeline(fetcher, st)
	stats, err := p.Run(context.Background(), []config.Site{{Name: "tribune"}})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Saved)
	assert.Equal(t, 1, stats.NoFingerprint)
	require.Len(t, st.records, 1)
	assert.Empty(t, st.records[0].ContentHash)
}

func TestRunContinuesAfterSiteFailure(t *testing.T) {
	st := &memStore{}
	p := newTestPipeline(&fakeFetcher{err: errors.New("timeout")}, st)

	stats, err := p.Run(context.Background(), []config.Site{{Name: "tribune"}})
	require.NoError(t, err)
	assert.Zero(t, stats.Fetched)
	assert.Zero(t, stats.Failures)
}

func TestIngestStoreFailureSkipsRegistration(t *testing.T) {
	st := &memStore{fail: true}
	p := newTestPipeline(&fakeFetcher{}, st)
	ctx := context.Background()

	art := article("Bank robbery downtown", "Police said so", "tribune", "https://t.example/a")
	_, _, err := p.Ingest(ctx, art)
	require.Error(t, err)

	// The failed persist must not poison the registry: the retry is
	// still new, and once it succeeds the repeat is an exact duplicate.
	st.fail = false
	_, d, err := p.Ingest(ctx, art)
	require.NoError(t, err)
	assert.Equal(t, dedup.StatusNew, d.Status)

	_, d, err = p.Ingest(ctx, art)
	require.NoError(t, err)
	assert.Equal(t, dedup.StatusDuplicateExact, d.Status)
}

func TestIngestAttachesHashes(t *testing.T) {
	st := &memStore{}
	p := newTestPipeline(&fakeFetcher{}, st)

	rec, d, err := p.Ingest(context.Background(),
		article("Bank robbery downtown", "Police said so", "tribune", "https://t.example/a"))
	require.NoError(t, err)
	require.True(t, d.HasFingerprint)

	assert.Equal(t, d.Fingerprint.ContentHash, rec.ContentHash)
	assert.Equal(t, d.Fingerprint.SimilarityHash, rec.SimilarityHash)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := &memStore{}
	fetcher := &fakeFetcher{articles: map[string][]domain.RawArticle{
		"tribune": {article("h", "c", "tribune", "u")},
	}}
	p := newTestPipeline(fetcher, st)

	_, err := p.Run(ctx, []config.Site{{Name: "tribune"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, st.records)
}
