package analyses

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/analyses/engine"
	"placement-backend/internal/documents"
	"placement-backend/internal/extract"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc  *Service
	Docs *documents.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs *documents.Service) *Handler {
	return &Handler{Svc: svc, Docs: docs}
}

// RegisterRoutes attaches analysis routes to the router group. The
// analyze route additionally carries the caller's rate limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	analyze := []gin.HandlerFunc{h.analyze}
	if rateLimit != nil {
		analyze = append([]gin.HandlerFunc{rateLimit}, analyze...)
	}
	rg.POST("/resumes/analyze", analyze...)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

// analysisResponse flattens the report into the response alongside the
// file metadata and cache fields.
type analysisResponse struct {
	ID string `json:"id"`
	engine.Report
	FileType  string    `json:"fileType"`
	Pages     int       `json:"pages"`
	CacheKey  string    `json:"cacheKey"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(a Analysis) analysisResponse {
	return analysisResponse{
		ID:        a.ID,
		Report:    a.Report,
		FileType:  a.FileType,
		Pages:     a.PageCount,
		CacheKey:  a.ContentHash,
		Cached:    a.Cached,
		CreatedAt: a.CreatedAt,
	}
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	input, ok := h.resolveInput(c, userID)
	if !ok {
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrDocLegacyFormat):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, extract.ErrDocLegacyFormat.Error(), nil)
		case errors.Is(err, extract.ErrPageLimitExceeded):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, extract.ErrPageLimitExceeded.Error(), nil)
		case errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unsupported file format; upload a PDF or DOCX resume", nil)
		case errors.Is(err, ErrEmptyUpload):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "the uploaded file is empty", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze resume", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	c.Set("cacheHit", analysis.Cached)
	if analysis.DocumentID != "" {
		c.Set("documentId", analysis.DocumentID)
	}

	respond.OK(c, toResponse(analysis))
}

// resolveInput reads the multipart upload, or falls back to the
// caller's current stored resume when no file was sent.
func (h *Handler) resolveInput(c *gin.Context, userID string) (AnalyzeInput, bool) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
			return AnalyzeInput{}, false
		}
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
			return AnalyzeInput{}, false
		}

		return AnalyzeInput{
			Data:     data,
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
		}, true
	}

	doc, err := h.Docs.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "no file uploaded and no resume on file", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load stored resume", nil)
		}
		return AnalyzeInput{}, false
	}

	rc, err := h.Docs.Open(c.Request.Context(), doc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "stored resume file is missing", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load stored resume", nil)
		}
		return AnalyzeInput{}, false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load stored resume", nil)
		return AnalyzeInput{}, false
	}

	return AnalyzeInput{
		Data:       data,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		DocumentID: doc.ID,
	}, true
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis", nil)
		}
		return
	}

	respond.OK(c, toResponse(analysis))
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}

	resp := make([]analysisResponse, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, toResponse(a))
	}
	respond.OK(c, gin.H{"analyses": resp})
}
