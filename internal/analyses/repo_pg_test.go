package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"placement-backend/internal/analyses/engine"
)

func newPGRepoTest(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newPGRepoTest(t)

	analysis := Analysis{
		ID:          "analysis-1",
		UserID:      "user-1",
		DocumentID:  "doc-1",
		ContentHash: "abc123",
		FileType:    "pdf",
		PageCount:   2,
		WordCount:   312,
		Score:       74,
		Benchmark:   "B",
		Cached:      false,
		Report:      engine.Report{Score: 74, Benchmark: "B", WordCount: 312},
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
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
			sqlmock.AnyArg(), // result json
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func analysisColumns() []string {
	return []string{
		"id", "user_id", "document_id", "content_hash", "file_type",
		"page_count", "word_count", "score", "benchmark", "cached",
		"result", "created_at",
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newPGRepoTest(t)

	report := engine.Report{Score: 88, Benchmark: "A", WordCount: 412}
	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	rows := sqlmock.NewRows(analysisColumns()).
		AddRow("analysis-1", "user-1", "doc-1", "abc123", "pdf",
			2, 412, 88, "A", true, payload, time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("analysis-1", "user-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "user-1", "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Score != 88 || got.Benchmark != "A" || !got.Cached {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Report.Score != 88 || got.Report.WordCount != 412 {
		t.Fatalf("report not restored: %+v", got.Report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newPGRepoTest(t)

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows(analysisColumns()))

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	repo, mock := newPGRepoTest(t)

	payload, _ := json.Marshal(engine.Report{Score: 52, Benchmark: "C"})
	rows := sqlmock.NewRows(analysisColumns()).
		AddRow("analysis-2", "user-1", "", "def456", "docx",
			1, 120, 52, "C", false, payload, time.Now().UTC()).
		AddRow("analysis-1", "user-1", "doc-1", "abc123", "pdf",
			2, 412, 88, "A", false, payload, time.Now().UTC().Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].ID != "analysis-2" || got[1].ID != "analysis-1" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
