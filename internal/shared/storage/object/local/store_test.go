package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	payload := []byte("%PDF-1.4 resume body")

	key, size, mimeType, err := store.Save(ctx, "user-1", "resume.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("size %d, want %d", size, len(payload))
	}
	if mimeType == "" {
		t.Fatalf("mime type missing")
	}
	if !strings.Contains(key, "/") {
		t.Fatalf("storage key should be namespaced per user: %q", key)
	}

	if _, _, _, err := store.Save(ctx, "user-1", "../escape.pdf", bytes.NewReader(payload)); err == nil {
		t.Fatalf("traversal file name should be rejected")
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
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

func TestSaveSameBytesSameKey(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	payload := []byte("identical resume content")

	key1, _, _, err := store.Save(ctx, "user-1", "resume.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	key2, _, _, err := store.Save(ctx, "user-1", "resume.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if key1 != key2 {
		t.Fatalf("same content should produce the same key: %q vs %q", key1, key2)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../etc/passwd", "/etc/passwd", "."} {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestDeleteMissingIsNoError(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete(context.Background(), "user/none.pdf"); err != nil {
		t.Fatalf("Delete of missing object: %v", err)
	}
}

func TestDeleteRemovesObject(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, _, _, err := store.Save(ctx, "user-1", "resume.pdf", bytes.NewReader([]byte("bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Fatalf("object should be gone")
	}
}
