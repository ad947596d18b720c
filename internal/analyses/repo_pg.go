package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"placement-backend/internal/analyses/engine"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis history row.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, user_id, document_id, content_hash, file_type, page_count,
	word_count, score, benchmark, cached, result, created_at
)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	payload, err := json.Marshal(analysis.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.DocumentID,
		analysis.ContentHash,
		analysis.FileType,
		analysis.PageCount,
		analysis.WordCount,
		analysis.Score,
		analysis.Benchmark,
		analysis.Cached,
		payload,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns the user's analysis by its ID.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	const query = `
SELECT id, user_id, COALESCE(document_id::text, ''), content_hash, file_type,
       page_count, word_count, score, benchmark, cached, result, created_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	var a Analysis
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, analysisID, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.DocumentID,
		&a.ContentHash,
		&a.FileType,
		&a.PageCount,
		&a.WordCount,
		&a.Score,
		&a.Benchmark,
		&a.Cached,
		&payload,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if err := unmarshalReport(payload, &a.Report); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// ListByUser lists the user's analyses ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, COALESCE(document_id::text, ''), content_hash, file_type,
       page_count, word_count, score, benchmark, cached, result, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		var a Analysis
		var payload []byte
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.DocumentID,
			&a.ContentHash,
			&a.FileType,
			&a.PageCount,
			&a.WordCount,
			&a.Score,
			&a.Benchmark,
			&a.Cached,
			&payload,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalReport(payload, &a.Report); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func unmarshalReport(payload []byte, report *engine.Report) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, report); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
