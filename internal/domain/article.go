// Package domain holds the data model shared by the extraction and
// deduplication engines.
package domain

import "time"

// RawArticle is an article as harvested from a news site, before any
// processing. Immutable once created by the fetcher. Headline and
// Content may be empty; downstream code must degrade, not crash.
type RawArticle struct {
	Headline string `json:"headline"`
	Content  string `json:"content"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// Record is the structured output of the extraction engine, one row in
// the record store. List-valued fields (Who, What, Where, When) are
// semicolon-joined, first-seen order, duplicates suppressed. Numeric
// fields are nil when no signal was found — absence is not zero.
type Record struct {
	ID              string    `db:"id"              json:"id"`
	DateScraped     time.Time `db:"date_scraped"    json:"date_scraped"`
	ArticleURL      string    `db:"article_url"     json:"article_url"`
	Source          string    `db:"source"          json:"source"`
	Headline        string    `db:"headline"        json:"headline"`
	PublicationDate string    `db:"publication_date" json:"publication_date,omitempty"`
	Who             string    `db:"who"             json:"who"`
	What            string    `db:"what"            json:"what"`
	Where           string    `db:"where"           json:"where"`
	When            string    `db:"when"            json:"when"`
	How             string    `db:"how"             json:"how,omitempty"`
	Why             string    `db:"why"             json:"why,omitempty"`
	EconomicLoss    string    `db:"economic_loss"   json:"economic_loss,omitempty"`
	Injuries        *int      `db:"injuries"        json:"injuries,omitempty"`
	Fatalities      *int      `db:"fatalities"      json:"fatalities,omitempty"`
	Arrests         *int      `db:"arrests"         json:"arrests,omitempty"`
	FullText        string    `db:"full_text"       json:"full_text"`

	// Dedup columns, written alongside the record.
	ContentHash    string `db:"content_hash"    json:"content_hash,omitempty"`
	SimilarityHash string `db:"similarity_hash" json:"similarity_hash,omitempty"`
	DuplicateNote  string `db:"duplicate_note"  json:"duplicate_note,omitempty"`
}
