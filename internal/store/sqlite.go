// Package store implements the append-only record store on SQLite.
// Rows are only ever inserted; there are no updates or deletes.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/jonesrussell/crimewatch/internal/dedup"
	"github.com/jonesrussell/crimewatch/internal/domain"
	"github.com/jonesrussell/crimewatch/internal/logger"
)

// schema creates the record table. "where" and "when" are quoted:
// they are the original column names and SQLite keywords.
const schema = `
CREATE TABLE IF NOT EXISTS crime_articles (
	id               TEXT NOT NULL,
	date_scraped     TIMESTAMP NOT NULL,
	article_url      TEXT NOT NULL,
	source           TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	publication_date TEXT NOT NULL DEFAULT '',
	who              TEXT NOT NULL DEFAULT '',
	what             TEXT NOT NULL DEFAULT '',
	"where"          TEXT NOT NULL DEFAULT '',
	"when"           TEXT NOT NULL DEFAULT '',
	how              TEXT NOT NULL DEFAULT '',
	why              TEXT NOT NULL DEFAULT '',
	economic_loss    TEXT NOT NULL DEFAULT '',
	injuries         INTEGER,
	fatalities       INTEGER,
	arrests          INTEGER,
	full_text        TEXT NOT NULL DEFAULT '',
	content_hash     TEXT NOT NULL DEFAULT '',
	similarity_hash  TEXT NOT NULL DEFAULT '',
	duplicate_note   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_crime_articles_url ON crime_articles (article_url);
`

const insertQuery = `
INSERT INTO crime_articles (
	id, date_scraped, article_url, source, headline, publication_date,
	who, what, "where", "when", how, why, economic_loss,
	injuries, fatalities, arrests, full_text,
	content_hash, similarity_hash, duplicate_note
) VALUES (
	:id, :date_scraped, :article_url, :source, :headline, :publication_date,
	:who, :what, :where, :when, :how, :why, :economic_loss,
	:injuries, :fatalities, :arrests, :full_text,
	:content_hash, :similarity_hash, :duplicate_note
)`

// Store is the SQLite-backed record store.
type Store struct {
	db  *sqlx.DB
	fp  *dedup.Fingerprinter
	log logger.Logger
}

// Open opens (creating if needed) the database at path and ensures
// the schema exists.
func Open(ctx context.Context, path string, log logger.Logger) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open record store %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create record store schema: %w", err)
	}
	return &Store{db: db, fp: dedup.NewFingerprinter(), log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts one record. All-or-nothing: a failed insert leaves
// no partial row behind.
func (s *Store) Append(ctx context.Context, rec *domain.Record) error {
	if _, err := s.db.NamedExecContext(ctx, insertQuery, rec); err != nil {
		return fmt.Errorf("append record %s: %w", rec.ArticleURL, err)
	}
	return nil
}

// HasURL reports whether an article with this exact URL was already
// stored. Used by the fetcher to skip re-downloads, not by the dedup
// engine.
func (s *Store) HasURL(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(1) FROM crime_articles WHERE article_url = ?`, url)
	if err != nil {
		return false, fmt.Errorf("check url %s: %w", url, err)
	}
	return n > 0, nil
}

// Recent returns the most recently scraped records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	var recs []domain.Record
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, date_scraped, article_url, source, headline, publication_date,
		       who, what, "where", "when", how, why, economic_loss,
		       injuries, fatalities, arrests, full_text,
		       content_hash, similarity_hash, duplicate_note
		FROM crime_articles
		ORDER BY date_scraped DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent records: %w", err)
	}
	return recs, nil
}

// Stats summarizes the stored corpus.
type Stats struct {
	Total      int `db:"total"       json:"total"`
	Flagged    int `db:"flagged"     json:"flagged_cross_source"`
	Sources    int `db:"sources"     json:"sources"`
	WithCounts int `db:"with_counts" json:"with_numeric_signals"`
}

// Summary returns corpus-level statistics.
func (s *Store) Summary(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.GetContext(ctx, &st, `
		SELECT COUNT(1) AS total,
		       COALESCE(SUM(CASE WHEN duplicate_note != '' THEN 1 ELSE 0 END), 0) AS flagged,
		       COUNT(DISTINCT source) AS sources,
		       COALESCE(SUM(CASE WHEN injuries IS NOT NULL OR fatalities IS NOT NULL
		                  OR arrests IS NOT NULL THEN 1 ELSE 0 END), 0) AS with_counts
		FROM crime_articles`)
	if err != nil {
		return Stats{}, fmt.Errorf("load store stats: %w", err)
	}
	return st, nil
}

// fingerprintRow is the subset of columns the bootstrap reads.
type fingerprintRow struct {
	Source         string `db:"source"`
	Headline       string `db:"headline"`
	FullText       string `db:"full_text"`
	SimilarityHash string `db:"similarity_hash"`
}

// Fingerprints implements dedup.BootstrapStrategy. Exact hashes are
// always recomputed from raw text (they are not persisted); stored
// similarity hashes are trusted when present and recomputed when the
// column is empty or missing entirely (pre-dedup schema). Rows whose
// raw text is unusable are skipped rather than failing the run.
func (s *Store) Fingerprints(ctx context.Context) (exact, similarity []string, err error) {
	rows, err := s.loadFingerprintRows(ctx)
	if err != nil {
		return nil, nil, err
	}

	skipped := 0
	for _, row := range rows {
		fp, ok := s.fp.Fingerprint(row.Headline, row.FullText, row.Source)
		if !ok {
			skipped++
			continue
		}
		exact = append(exact, fp.ExactHash)
		if row.SimilarityHash != "" {
			similarity = append(similarity, row.SimilarityHash)
		} else {
			similarity = append(similarity, fp.SimilarityHash)
		}
	}
	if skipped > 0 {
		s.log.Warn("skipped rows without usable text during fingerprint reload",
			logger.Int("skipped", skipped))
	}
	return exact, similarity, nil
}

func (s *Store) loadFingerprintRows(ctx context.Context) ([]fingerprintRow, error) {
	var rows []fingerprintRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT source, headline, full_text, similarity_hash FROM crime_articles`)
	if err == nil {
		return rows, nil
	}

	// Older databases predate the hash and source columns; rebuild
	// everything from raw text.
	s.log.Warn("hash columns unavailable, recomputing fingerprints from raw text",
		logger.Error(err))
	var bare []fingerprintRow
	bareErr := s.db.SelectContext(ctx, &bare,
		`SELECT headline, full_text FROM crime_articles`)
	if bareErr != nil {
		return nil, fmt.Errorf("load fingerprint rows: %w", bareErr)
	}
	return bare, nil
}
