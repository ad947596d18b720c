package analyses

import (
	"time"

	"placement-backend/internal/analyses/engine"
)

// Analysis is one scored resume evaluation kept in the user's history.
type Analysis struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	DocumentID  string        `json:"documentId,omitempty"`
	ContentHash string        `json:"contentHash"`
	FileType    string        `json:"fileType"`
	PageCount   int           `json:"pageCount"`
	WordCount   int           `json:"wordCount"`
	Score       int           `json:"score"`
	Benchmark   string        `json:"benchmark"`
	Cached      bool          `json:"cached"`
	Report      engine.Report `json:"report"`
	CreatedAt   time.Time     `json:"createdAt"`
}
