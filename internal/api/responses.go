package api

import "github.com/jonesrussell/crimewatch/internal/domain"

// ProcessRequest is the body of POST /api/v1/process.
type ProcessRequest struct {
	Headline string `json:"headline"`
	Content  string `json:"content"`
	Source   string `json:"source" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

// ProcessResponse reports the extraction result and duplicate
// decision for one submitted article.
type ProcessResponse struct {
	Record *domain.Record `json:"record"`
	Status string         `json:"status"`
	// Saved is false for exact duplicates, which are never stored.
	Saved bool `json:"saved"`
}

// RecordsListResponse is the body of GET /api/v1/records.
type RecordsListResponse struct {
	Records []domain.Record `json:"records"`
	Total   int             `json:"total"`
}
