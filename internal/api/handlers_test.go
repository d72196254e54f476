package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/store"
)

type fakeIngester struct {
	rec      *domain.Record
	decision dedup.Decision
	err      error
	got      domain.RawArticle
}

func (f *fakeIngester) Ingest(ctx context.Context, art domain.RawArticle) (*domain.Record, dedup.Decision, error) {
	f.got = art
	return f.rec, f.decision, f.err
}

type fakeReader struct {
	records []domain.Record
	stats   store.Stats
	err     error
}

func (f *fakeReader) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeReader) Summary(ctx context.Context) (store.Stats, error) {
	return f.stats, f.err
}

func (f *fakeReader) Close() error { return nil }

func newTestRouter(ingester Ingester, reader RecordReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(ingester, reader, "test", logger.NewNop()))
	return router
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeIngester{}, &fakeReader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestReadyCheck(t *testing.T) {
	router := newTestRouter(&fakeIngester{}, &fakeReader{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	broken := newTestRouter(&fakeIngester{}, &fakeReader{err: errors.New("store offline")})
	w = httptest.NewRecorder()
	broken.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRecords(t *testing.T) {
	reader := &fakeReader{records: []domain.Record{
		{ID: "id-1", Headline: "Bank robbery downtown"},
		{ID: "id-2", Headline: "Warehouse arson charge"},
	}}
	router := newTestRouter(&fakeIngester{}, reader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecordsListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "id-1", resp.Records[0].ID)
}

func TestListRecordsLimit(t *testing.T) {
	reader := &fakeReader{records: []domain.Record{{ID: "id-1"}, {ID: "id-2"}}}
	router := newTestRouter(&fakeIngester{}, reader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecordsListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records?limit=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	reader := &fakeReader{stats: store.Stats{Total: 4, Flagged: 1, Sources: 2}}
	router := newTestRouter(&fakeIngester{}, reader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 1, got.Flagged)
}

func TestProcessArticle(t *testing.T) {
	ingester := &fakeIngester{
		rec:      &domain.Record{ID: "id-1", Headline: "Bank robbery downtown"},
		decision: dedup.Decision{Status: dedup.StatusNew, HasFingerprint: true},
	}
	router := newTestRouter(ingester, &fakeReader{})

	body := `{"headline":"Bank robbery downtown","content":"Police said so","source":"tribune","url":"https://t.example/a"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new", resp.Status)
	assert.True(t, resp.Saved)
	assert.Equal(t, "id-1", resp.Record.ID)
	assert.Equal(t, "tribune", ingester.got.Source)
}

func TestProcessArticleExactDuplicate(t *testing.T) {
	ingester := &fakeIngester{
		rec:      &domain.Record{ID: "id-1"},
		decision: dedup.Decision{Status: dedup.StatusDuplicateExact, HasFingerprint: true},
	}
	router := newTestRouter(ingester, &fakeReader{})

	body := `{"headline":"h","content":"c","source":"tribune","url":"https://t.example/a"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "exact_same_source", resp.Status)
	assert.False(t, resp.Saved)
}

func TestProcessArticleValidation(t *testing.T) {
	router := newTestRouter(&fakeIngester{}, &fakeReader{})

	// Missing required source and url fields.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/process", strings.NewReader(`{"headline":"h"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeIngester{}, &fakeReader{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
