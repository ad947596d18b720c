package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/documents"
	"placement-backend/internal/extract"
	sharedauth "placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/server/middleware"
	local "placement-backend/internal/shared/storage/object/local"
)

func setupAnalysisRouter(t *testing.T) (*gin.Engine, *Service, *documents.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docSvc := &documents.Service{
		Store: local.New(t.TempDir()),
		Repo:  documents.NewMemoryRepo(),
	}
	svc := newTestService()
	handler := NewHandler(svc, docSvc)

	router := gin.New()
	router.Use(middleware.Auth())
	rg := router.Group("/api/v1")
	handler.RegisterRoutes(rg, nil)
	return router, svc, docSvc
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func multipartBody(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func decodeAnalysis(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAnalyzeMultipartUpload(t *testing.T) {
	router, _, _ := setupAnalysisRouter(t)

	buf, contentType := multipartBody(t, "file", "resume.pdf", sampleResume)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	body := decodeAnalysis(t, resp)
	if body["cached"] != false {
		t.Fatalf("first analysis must not be cached: %v", body["cached"])
	}
	if body["cacheKey"] == "" || body["cacheKey"] == nil {
		t.Fatalf("cacheKey missing")
	}
	score, ok := body["score"].(float64)
	if !ok || score < 20 || score > 100 {
		t.Fatalf("score out of range: %v", body["score"])
	}

	// same bytes again: served from cache
	buf2, contentType2 := multipartBody(t, "file", "resume.pdf", sampleResume)
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", buf2)
	req2.Header.Set("Content-Type", contentType2)
	addGuestHeader(req2)
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)

	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.Code)
	}
	body2 := decodeAnalysis(t, resp2)
	if body2["cached"] != true {
		t.Fatalf("identical bytes should hit the cache")
	}
	if body2["cacheKey"] != body["cacheKey"] {
		t.Fatalf("cache key changed between identical uploads")
	}
}

func TestAnalyzeFallsBackToStoredResume(t *testing.T) {
	router, _, docSvc := setupAnalysisRouter(t)

	userID := "guest:test-guest"
	if _, err := docSvc.Upload(context.Background(), userID, "resume.pdf", bytes.NewReader([]byte(sampleResume))); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from stored resume, got %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeAnalysis(t, resp)
	if body["cached"] != false {
		t.Fatalf("fresh stored-resume analysis must not be cached")
	}
}

func TestAnalyzeNoFileNoStoredResume(t *testing.T) {
	router, _, _ := setupAnalysisRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeLegacyDocRejected(t *testing.T) {
	router, svc, _ := setupAnalysisRouter(t)
	svc.ExtractFn = extract.FromBytes

	buf, contentType := multipartBody(t, "file", "resume.doc", "old word binary")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for .doc upload, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Code)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	router, _, _ := setupAnalysisRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/nope", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListAnalysesGuestRequiresLogin(t *testing.T) {
	router, _, _ := setupAnalysisRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest history, got %d", resp.Code)
	}
}

func TestListAnalysesWithToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	router, svc, _ := setupAnalysisRouter(t)

	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   "user-42",
		Email: "student@campus.edu",
		Exp:   time.Now().Add(time.Hour).Unix(),
		Iat:   time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	input := AnalyzeInput{Data: []byte(sampleResume), FileName: "resume.pdf"}
	if _, err := svc.Analyze(context.Background(), "user-42", input); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Analyses []json.RawMessage `json:"analyses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Analyses) != 1 {
		t.Fatalf("expected 1 analysis in history, got %d", len(body.Analyses))
	}
}
