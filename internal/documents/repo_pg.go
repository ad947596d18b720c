package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts the document and promotes it to current in one
// transaction so the user never has two current resumes.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET is_current = FALSE WHERE user_id = $1 AND is_current`,
		doc.UserID,
	); err != nil {
		return err
	}

	const insert = `
INSERT INTO documents (
	id, user_id, file_name, file_type, size_bytes, storage_key,
	content_hash, is_current, uploaded_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)`

	if _, err := tx.ExecContext(ctx, insert,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.ContentHash,
		doc.UploadedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

const selectColumns = `
SELECT id, user_id, file_name, file_type, size_bytes, storage_key,
       content_hash, is_current, uploaded_at
FROM documents`

// GetByID returns the user's document by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	query := selectColumns + `
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, documentID, userID))
}

// GetCurrentByUser returns the user's current resume.
func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	query := selectColumns + `
WHERE user_id = $1 AND is_current
ORDER BY uploaded_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser lists the user's documents, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := selectColumns + `
WHERE user_id = $1
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.FileName,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.StorageKey,
			&doc.ContentHash,
			&doc.IsCurrent,
			&doc.UploadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.ContentHash,
		&doc.IsCurrent,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
