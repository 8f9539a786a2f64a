package extract

import (
	"context"
	"errors"
)

// Extraction modes accepted by New.
const (
	ModeHeuristic = "heuristic"
	ModePDF       = "pdf"
	ModeAuto      = "auto"
)

// Extractor turns raw document bytes into analysable text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(data []byte) (string, error)

// Extract calls f after checking the context.
func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f(data)
}

// New returns the extractor for mode. Unknown modes fall back to the heuristic.
func New(mode string) Extractor {
	switch mode {
	case ModePDF:
		return ExtractorFunc(pdfOnly)
	case ModeAuto:
		return ExtractorFunc(auto)
	default:
		return ExtractorFunc(Recover)
	}
}

// pdfOnly reports every structural failure as ErrTextTooShort so callers
// classify it the same way as a heuristic failure.
func pdfOnly(data []byte) (string, error) {
	text, err := PDFText(data)
	if err != nil {
		if errors.Is(err, ErrTextTooShort) {
			return "", err
		}
		return "", errors.Join(ErrTextTooShort, err)
	}
	return text, nil
}

func auto(data []byte) (string, error) {
	if text, err := PDFText(data); err == nil {
		return text, nil
	}
	return Recover(data)
}
