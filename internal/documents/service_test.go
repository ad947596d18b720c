package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	local "placement-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}
}

func TestUploadBecomesCurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "user-1", "old.pdf", bytes.NewReader([]byte("first resume")))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if !first.IsCurrent {
		t.Fatalf("first upload must be current")
	}
	if first.ContentHash == "" {
		t.Fatalf("content hash missing")
	}

	second, err := svc.Upload(ctx, "user-1", "new.pdf", bytes.NewReader([]byte("second resume")))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	current, err := svc.Current(ctx, "user-1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != second.ID {
		t.Fatalf("newest upload should be current, got %s want %s", current.ID, second.ID)
	}

	demoted, err := svc.Repo.GetByID(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if demoted.IsCurrent {
		t.Fatalf("previous upload must be demoted")
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Upload(context.Background(), "user-1", "resume.txt", bytes.NewReader([]byte("plain"))); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "user-1", "", bytes.NewReader([]byte("x"))); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "user-1", "resume.pdf", bytes.NewReader(nil)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for empty body, got %v", err)
	}
}

func TestUploadRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	payload := []byte("resume bytes for round trip")

	doc, err := svc.Upload(ctx, "user-1", "resume.docx", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	rc, err := svc.Open(ctx, doc)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ")
	}
}

func TestCurrentNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Current(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if _, err := svc.Upload(ctx, "user-1", name, bytes.NewReader([]byte(name))); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}

	docs, err := svc.List(ctx, "user-1", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}
	if docs[0].UploadedAt.Before(docs[1].UploadedAt) {
		t.Fatalf("expected newest first, got %v then %v", docs[0].UploadedAt, docs[1].UploadedAt)
	}
}
