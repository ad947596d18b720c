package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repo defines persistence operations for users.
type Repo interface {
	// UpsertByGoogleSub creates the user on first sign-in or refreshes
	// profile fields on a repeat sign-in, returning the stored user.
	UpsertByGoogleSub(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
