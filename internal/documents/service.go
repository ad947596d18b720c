package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"placement-backend/internal/shared/storage/object"
	"placement-backend/internal/shared/util"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// Service contains business logic for resume documents.
type Service struct {
	Store object.Store
	Repo  Repo
}

// Upload saves the resume to object storage and records it as the
// user's current document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return Document{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	if len(data) == 0 {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    fileName,
		MimeType:    mimeType,
		SizeBytes:   size,
		StorageKey:  storageKey,
		ContentHash: util.ContentHash(data),
		IsCurrent:   true,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Current returns the user's current resume.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, errors.New("user id required")
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// List returns the user's uploads, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open streams the stored file for a document.
func (s *Service) Open(ctx context.Context, doc Document) (io.ReadCloser, error) {
	return s.Store.Open(ctx, doc.StorageKey)
}
