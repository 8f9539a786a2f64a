package analyses

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"resume-review/internal/extract"
	"resume-review/internal/history"
	"resume-review/internal/llm"
	"resume-review/internal/shared/metrics"
	"resume-review/internal/shared/telemetry"
)

const (
	// DefaultMaxUploadBytes is the upload ceiling when none is configured.
	DefaultMaxUploadBytes = 10 << 20

	excerptChars = 500
)

// Upload is one file submitted for analysis.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service runs the analysis pipeline: validate, recover text, ask the model,
// parse, persist.
type Service struct {
	Extractor      extract.Extractor
	LLM            llm.Client
	History        *history.Store
	MaxUploadBytes int64

	now      func() time.Time
	inFlight sync.Mutex
}

// NewService constructs a Service.
func NewService(extractor extract.Extractor, client llm.Client, store *history.Store, maxUploadBytes int64) *Service {
	return &Service{
		Extractor:      extractor,
		LLM:            client,
		History:        store,
		MaxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// Analyze processes one upload. Only one upload is processed at a time; a
// concurrent call fails with ErrBusy. Nothing is stored unless every step
// succeeds.
func (s *Service) Analyze(ctx context.Context, up Upload) (history.Entry, error) {
	if err := s.validate(up); err != nil {
		s.fail(ctx, up, err, nil)
		return history.Entry{}, err
	}
	if !s.inFlight.TryLock() {
		s.fail(ctx, up, ErrBusy, nil)
		return history.Entry{}, ErrBusy
	}
	defer s.inFlight.Unlock()

	startedAt := s.clock()
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"file_name":  up.FileName,
		"size_bytes": len(up.Data),
		"status":     "started",
	})

	text, err := s.Extractor.Extract(ctx, up.Data)
	if err != nil {
		err = fmt.Errorf("recover text: %w", err)
		s.fail(ctx, up, err, &startedAt)
		return history.Entry{}, err
	}

	reply, err := s.LLM.AnalyzeResume(ctx, llm.AnalyzeInput{ResumeText: text, FileName: up.FileName})
	if err != nil {
		err = fmt.Errorf("analyze resume: %w", err)
		s.fail(ctx, up, err, &startedAt)
		return history.Entry{}, err
	}

	result, err := ParseResult(reply)
	if err != nil {
		s.fail(ctx, up, err, &startedAt)
		return history.Entry{}, err
	}

	entry, err := s.History.Append(ctx, history.Entry{
		FileName:      up.FileName,
		FileSize:      formatFileSize(len(up.Data)),
		AnalyzedAt:    s.clock().UTC(),
		ExtractedText: excerpt(text),
		Result:        result,
	})
	if err != nil {
		err = fmt.Errorf("store analysis: %w", err)
		s.fail(ctx, up, err, &startedAt)
		return history.Entry{}, err
	}

	completedAt := s.clock()
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	rating, _ := result.Rating()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"file_name":   up.FileName,
		"history_id":  entry.ID,
		"rating":      rating,
		"status":      "completed",
		"duration_ms": durationMs(&startedAt, &completedAt),
	})
	return entry, nil
}

func (s *Service) validate(up Upload) error {
	if !isPDF(up) {
		return ErrUnsupportedType
	}
	if len(up.Data) == 0 {
		return ErrEmptyFile
	}
	limit := s.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	if int64(len(up.Data)) > limit {
		return fmt.Errorf("%w (max %s)", ErrFileTooLarge, formatLimit(limit))
	}
	return nil
}

// isPDF trusts a declared content type; the extension is consulted only when
// the client sent none.
func isPDF(up Upload) bool {
	contentType := strings.ToLower(strings.TrimSpace(up.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType == "application/pdf"
	}
	return strings.EqualFold(filepath.Ext(up.FileName), ".pdf")
}

func (s *Service) fail(ctx context.Context, up Upload, err error, startedAt *time.Time) {
	failure := Classify(err)
	metrics.IncAnalysisFailed(failure.Code)
	fields := map[string]any{
		"request_id": requestIDFromContext(ctx),
		"file_name":  up.FileName,
		"status":     "failed",
		"code":       failure.Code,
		"error":      err.Error(),
	}
	if startedAt != nil {
		completedAt := s.clock()
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
		fields["duration_ms"] = durationMs(startedAt, &completedAt)
	}
	telemetry.Info("analysis.status", fields)
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func formatFileSize(n int) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}

func formatLimit(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%d MB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}

// excerpt keeps the first 500 characters of text followed by an ellipsis.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > excerptChars {
		runes = runes[:excerptChars]
	}
	return string(runes) + "..."
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}
