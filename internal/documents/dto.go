package documents

import "time"

// DocumentResponse is the outward-facing representation of a resume upload.
type DocumentResponse struct {
	DocumentID  string    `json:"documentId"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	ContentHash string    `json:"contentHash"`
	IsCurrent   bool      `json:"isCurrent"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.ID,
		FileName:    doc.FileName,
		MimeType:    doc.MimeType,
		SizeBytes:   doc.SizeBytes,
		ContentHash: doc.ContentHash,
		IsCurrent:   doc.IsCurrent,
		UploadedAt:  doc.UploadedAt,
	}
}
