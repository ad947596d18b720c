package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"placement-backend/internal/shared/storage/object"
	"placement-backend/internal/shared/util"
)

// Store keeps uploaded files on the local filesystem. Objects are keyed
// by a hash of the content so re-uploading the same file is idempotent.
type Store struct {
	baseDir string
}

// New creates a local store rooted at baseDir.
func New(baseDir string) object.Store {
	return &Store{baseDir: baseDir}
}

// Save buffers the upload, derives a content-addressed key, and writes it
// under a per-user directory. Resume uploads are small so buffering in
// memory is acceptable here.
func (s *Store) Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}

	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", fmt.Errorf("read upload: %w", err)
	}

	mimeType := http.DetectContentType(data)

	hash := util.ContentHash(data)
	finalName := fmt.Sprintf("%s_%s", hash[:16], sanitizedName)
	userDir := util.HashUserKey(userID)

	dirPath := filepath.Join(s.baseDir, userDir)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", 0, "", fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, finalName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", 0, "", fmt.Errorf("write object: %w", err)
	}

	return filepath.Join(userDir, finalName), int64(len(data)), mimeType, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// Delete removes a stored object if it exists.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *Store) resolve(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", storageKey)
	}
	return filepath.Join(s.baseDir, clean), nil
}
