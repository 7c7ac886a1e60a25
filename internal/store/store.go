// Package store persists processed document runs in DuckDB so earlier
// extractions can be inspected without re-running OCR.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/strrl/docsense/internal/pipeline"
)

const schema = `
CREATE TABLE IF NOT EXISTS document_runs (
	id         VARCHAR PRIMARY KEY,
	batch_id   VARCHAR,
	source     VARCHAR NOT NULL,
	text       VARCHAR,
	confidence DOUBLE,
	word_count INTEGER,
	analysis   VARCHAR,
	error      VARCHAR,
	created_at TIMESTAMP NOT NULL
)`

// Store is a DuckDB-backed run log.
type Store struct {
	db *sql.DB
}

// Run is one persisted document processing record. Error is non-empty for
// batch entries that failed.
type Run struct {
	ID         string
	BatchID    string
	Source     string
	Text       string
	Confidence float64
	WordCount  int
	Analysis   string
	Error      string
	CreatedAt  time.Time
}

// Open opens (or creates) the database at path and bootstraps the schema.
// An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult records a single processed document and returns the run id.
func (s *Store) SaveResult(result pipeline.DocumentResult) (string, error) {
	id := uuid.NewString()
	if err := s.insert(id, "", result.Source, result.OCR, result.Analysis, ""); err != nil {
		return "", err
	}
	return id, nil
}

// SaveBatch records every outcome of a batch under a shared batch id,
// failed entries included, and returns the batch id.
func (s *Store) SaveBatch(outcomes []pipeline.Outcome) (string, error) {
	batchID := uuid.NewString()

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			if err := s.insert(uuid.NewString(), batchID, outcome.Source, pipeline.OCRResult{}, "", outcome.Err.Error()); err != nil {
				return "", err
			}
			continue
		}
		if err := s.insert(uuid.NewString(), batchID, outcome.Source, outcome.Result.OCR, outcome.Result.Analysis, ""); err != nil {
			return "", err
		}
	}

	return batchID, nil
}

// Recent returns the newest n runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(batch_id, ''), source, COALESCE(text, ''),
		       COALESCE(confidence, 0), COALESCE(word_count, 0),
		       COALESCE(analysis, ''), COALESCE(error, ''), created_at
		FROM document_runs
		ORDER BY created_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Source, &r.Text, &r.Confidence, &r.WordCount, &r.Analysis, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) insert(id, batchID, source string, ocrResult pipeline.OCRResult, analysis, errText string) error {
	_, err := s.db.Exec(`
		INSERT INTO document_runs (id, batch_id, source, text, confidence, word_count, analysis, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, nullable(batchID), source, ocrResult.Text, ocrResult.Confidence, ocrResult.WordCount,
		nullable(analysis), nullable(errText), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert run for %s: %w", source, err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
