package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
	"github.com/jonesrussell/crimewatch/internal/store"
)

const (
	defaultRecordLimit = 50
	maxRecordLimit     = 500
)

// Ingester processes one article end to end and reports the duplicate
// decision. Implemented by pipeline.Pipeline.
type Ingester interface {
	Ingest(ctx context.Context, art domain.RawArticle) (*domain.Record, dedup.Decision, error)
}

// RecordReader serves stored records and corpus statistics.
type RecordReader interface {
	Recent(ctx context.Context, limit int) ([]domain.Record, error)
	Summary(ctx context.Context) (store.Stats, error)
	Close() error
}

// Handler handles HTTP requests for the crimewatch API.
type Handler struct {
	ingester Ingester
	records  RecordReader
	version  string
	log      logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(ingester Ingester, records RecordReader, version string, log logger.Logger) *Handler {
	return &Handler{
		ingester: ingester,
		records:  records,
		version:  version,
		log:      log,
	}
}

// ListRecords handles GET /api/v1/records.
func (h *Handler) ListRecords(c *gin.Context) {
	limit := defaultRecordLimit
	if param := c.Query("limit"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if n > maxRecordLimit {
			n = maxRecordLimit
		}
		limit = n
	}

	records, err := h.records.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to list records", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}

	c.JSON(http.StatusOK, RecordsListResponse{
		Records: records,
		Total:   len(records),
	})
}

// GetStats handles GET /api/v1/records/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.records.Summary(c.Request.Context())
	if err != nil {
		h.log.Error("failed to load record stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ProcessArticle handles POST /api/v1/process. The article runs
// through the same extraction and duplicate policy as scraped ones:
// an exact duplicate is reported, not stored twice.
func (h *Handler) ProcessArticle(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid process request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	art := domain.RawArticle{
		Headline: req.Headline,
		Content:  req.Content,
		Source:   req.Source,
		URL:      req.URL,
	}
	rec, decision, err := h.ingester.Ingest(c.Request.Context(), art)
	if err != nil {
		h.log.Error("failed to process article",
			logger.String("url", req.URL),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process article"})
		return
	}

	h.log.Info("article processed via API",
		logger.String("url", req.URL),
		logger.String("status", string(decision.Status)),
	)
	c.JSON(http.StatusOK, ProcessResponse{
		Record: rec,
		Status: string(decision.Status),
		Saved:  decision.Persist(),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "crimewatch",
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. Ready means the record store
// answers a trivial query.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if _, err := h.records.Summary(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"store": err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"store": "ok"},
	})
}
