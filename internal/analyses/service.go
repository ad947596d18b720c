package analyses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"placement-backend/internal/analyses/engine"
	"placement-backend/internal/extract"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
)

// Service runs the analysis pipeline: hash, cache lookup, text
// extraction, scoring, persistence.
type Service struct {
	Repo  Repo
	Cache Cache

	// Delay pads every analysis, hit or miss, so response latency does
	// not reveal the cache. Zero disables the pause; tests rely on that.
	Delay time.Duration

	// ExtractFn overrides document text extraction. Nil means
	// extract.FromBytes.
	ExtractFn func(ctx context.Context, data []byte, mimeType, fileName string) (extract.Result, error)
}

// AnalyzeInput is one resume payload to score.
type AnalyzeInput struct {
	Data       []byte
	FileName   string
	MimeType   string
	DocumentID string
}

// Analyze scores the payload and records the outcome in the user's
// history. Identical bytes are served from the cache with Cached set.
func (s *Service) Analyze(ctx context.Context, userID string, input AnalyzeInput) (Analysis, error) {
	if len(input.Data) == 0 {
		return Analysis{}, ErrEmptyUpload
	}

	metrics.IncAnalysisStarted()

	// The pause runs before the cache lookup so hits and misses show
	// the same latency; a fast hit would reveal the cache otherwise.
	if err := s.pause(ctx); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, err
	}
	start := time.Now()

	contentHash := util.ContentHash(input.Data)

	if entry, ok := s.Cache.Get(contentHash); ok {
		metrics.IncCacheLookup("hit")
		analysis := s.newAnalysis(userID, input.DocumentID, contentHash, entry, true)
		if err := s.Repo.Create(ctx, analysis); err != nil {
			metrics.IncAnalysisFailed()
			return Analysis{}, fmt.Errorf("record analysis: %w", err)
		}
		metrics.IncAnalysisCompleted()
		metrics.ObserveAnalysisDuration(time.Since(start).Seconds())
		return analysis, nil
	}
	metrics.IncCacheLookup("miss")

	extractFn := s.ExtractFn
	if extractFn == nil {
		extractFn = extract.FromBytes
	}
	result, err := extractFn(ctx, input.Data, input.MimeType, input.FileName)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, err
	}

	// Empty extracted text is still scored; the engine degrades to a
	// low-signal report rather than failing.
	report := engine.Analyze(result.Text)

	entry := Entry{Report: report, FileType: result.FileType, PageCount: result.PageCount}
	s.Cache.Set(contentHash, entry)

	analysis := s.newAnalysis(userID, input.DocumentID, contentHash, entry, false)
	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("record analysis: %w", err)
	}

	telemetry.Info("analysis completed", map[string]any{
		"user_id":      userID,
		"analysis_id":  analysis.ID,
		"content_hash": contentHash,
		"score":        analysis.Score,
		"benchmark":    analysis.Benchmark,
		"file_type":    analysis.FileType,
	})

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDuration(time.Since(start).Seconds())
	return analysis, nil
}

// Get returns the user's analysis by ID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns the user's history, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) pause(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) newAnalysis(userID, documentID, contentHash string, entry Entry, cached bool) Analysis {
	return Analysis{
		ID:          uuid.NewString(),
		UserID:      userID,
		DocumentID:  documentID,
		ContentHash: contentHash,
		FileType:    entry.FileType,
		PageCount:   entry.PageCount,
		WordCount:   entry.Report.WordCount,
		Score:       entry.Report.Score,
		Benchmark:   entry.Report.Benchmark,
		Cached:      cached,
		Report:      entry.Report,
		CreatedAt:   time.Now().UTC(),
	}
}
