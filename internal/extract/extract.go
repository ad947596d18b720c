package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// Resumes longer than this are rejected before analysis. For DOCX the
	// page count is approximated at 500 words per page.
	maxPages         = 5
	wordsPerPageDOCX = 500
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDocLegacyFormat   = errors.New("DOC format is not supported for analysis; convert to PDF or DOCX")
	ErrPageLimitExceeded = errors.New("page limit exceeded (max 5 pages)")
)

// Result carries the extracted plain text plus file metadata the analysis
// response surfaces to the caller.
type Result struct {
	Text      string
	FileType  string
	PageCount int
}

// FromBytes extracts resume text from an in-memory payload. The format is
// resolved from the declared mime type first and the file extension second;
// a payload with neither is treated as PDF.
// Libraries used: github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOCX).
func FromBytes(ctx context.Context, data []byte, mimeType, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	mime := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case strings.Contains(mime, mimePDF), ext == ".pdf", mime == "":
		return extractPDF(data)
	case strings.Contains(mime, mimeDOCX), ext == ".docx":
		return extractDOCX(data)
	case strings.Contains(mime, mimeDOC), ext == ".doc":
		return Result{}, ErrDocLegacyFormat
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
}

func extractPDF(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPages {
		return Result{}, fmt.Errorf("pdf: %w", ErrPageLimitExceeded)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Result{}, fmt.Errorf("pdf text: %w", err)
	}

	return Result{Text: buf.String(), FileType: "pdf", PageCount: pages}, nil
}

func extractDOCX(data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, errors.New("empty docx data")
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	text := stripDocxXML(doc.Editable().GetContent())

	approxPages := int(math.Ceil(float64(len(strings.Fields(text))) / wordsPerPageDOCX))
	if approxPages > maxPages {
		return Result{}, fmt.Errorf("docx: %w", ErrPageLimitExceeded)
	}

	return Result{Text: text, FileType: "docx", PageCount: approxPages}, nil
}

// stripDocxXML flattens word/document.xml into plain text, inserting a
// newline at each paragraph or line break.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
