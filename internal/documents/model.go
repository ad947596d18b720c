package documents

import "time"

// Document is an uploaded resume owned by a user. The most recent
// upload is the user's current resume.
type Document struct {
	ID          string
	UserID      string
	FileName    string
	MimeType    string
	SizeBytes   int64
	StorageKey  string
	ContentHash string
	IsCurrent   bool
	UploadedAt  time.Time
}
