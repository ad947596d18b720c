package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// UpsertByGoogleSub creates or refreshes the user keyed by Google subject.
func (r *PGRepo) UpsertByGoogleSub(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, google_sub, email, name, picture, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (google_sub) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  picture = EXCLUDED.picture,
  updated_at = now()
RETURNING id, google_sub, email, name, picture, created_at, updated_at`

	newID := uuid.NewString()
	var out User
	err := r.DB.QueryRowContext(ctx, query,
		newID,
		user.GoogleSub,
		user.Email,
		user.Name,
		user.Picture,
	).Scan(
		&out.ID,
		&out.GoogleSub,
		&out.Email,
		&out.Name,
		&out.Picture,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return out, nil
}

// GetByID returns a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, google_sub, email, name, picture, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`

	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.GoogleSub,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
