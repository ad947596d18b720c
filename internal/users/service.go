package users

import (
	"context"
	"errors"
	"strings"
)

// Service contains business logic for user accounts.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// SignIn persists the Google identity and returns the stored account.
func (s *Service) SignIn(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(user.GoogleSub) == "" || strings.TrimSpace(user.Email) == "" {
		return User{}, errors.New("google subject and email are required")
	}
	return s.Repo.UpsertByGoogleSub(ctx, user)
}

// GetByID loads a user account.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}
