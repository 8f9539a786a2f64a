package analyses

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"resume-review/internal/extract"
	"resume-review/internal/llm"
)

var (
	// ErrInput covers uploads rejected before any processing.
	ErrInput           = errors.New("invalid upload")
	ErrUnsupportedType = fmt.Errorf("%w: please upload a PDF file", ErrInput)
	ErrFileTooLarge    = fmt.Errorf("%w: file is too large", ErrInput)
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", ErrInput)

	// ErrBusy is returned while another upload is being analyzed.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrParse means no JSON object could be read from the model reply.
	ErrParse = errors.New("could not parse analysis response")
	// ErrShape means the JSON object lacks personalDetails or rating.
	ErrShape = errors.New("invalid analysis structure received")
)

const (
	CodeInput              = "INPUT_ERROR"
	CodeRecovery           = "RECOVERY_ERROR"
	CodeNetwork            = "NETWORK_ERROR"
	CodeRateLimitExhausted = "RATE_LIMIT_EXHAUSTED"
	CodeParse              = "PARSE_ERROR"
	CodeShape              = "SHAPE_ERROR"
	CodeBusy               = "BUSY"
	CodeInternal           = "INTERNAL_ERROR"
)

// Failure is the caller-facing form of a pipeline error.
type Failure struct {
	Code    string
	Status  int
	Message string
}

// Classify maps a pipeline error to a stable code, HTTP status and message.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return Failure{}
	case errors.Is(err, ErrBusy):
		return Failure{CodeBusy, http.StatusConflict, ErrBusy.Error()}
	case errors.Is(err, ErrFileTooLarge):
		return Failure{CodeInput, http.StatusRequestEntityTooLarge, err.Error()}
	case errors.Is(err, ErrInput):
		return Failure{CodeInput, http.StatusBadRequest, err.Error()}
	case errors.Is(err, extract.ErrTextTooShort):
		return Failure{CodeRecovery, http.StatusUnprocessableEntity, extract.ErrTextTooShort.Error()}
	case errors.Is(err, llm.ErrRateLimitExhausted):
		return Failure{CodeRateLimitExhausted, http.StatusServiceUnavailable, "rate limit exceeded, please try again in a few minutes"}
	case errors.Is(err, ErrShape):
		return Failure{CodeShape, http.StatusBadGateway, ErrShape.Error()}
	case errors.Is(err, ErrParse):
		return Failure{CodeParse, http.StatusBadGateway, ErrParse.Error()}
	case errors.Is(err, llm.ErrNotConfigured):
		return Failure{CodeNetwork, http.StatusServiceUnavailable, "analysis service is not configured"}
	case errors.Is(err, llm.ErrEmptyResponse):
		return Failure{CodeParse, http.StatusBadGateway, llm.ErrEmptyResponse.Error()}
	case errors.Is(err, llm.ErrNetwork):
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			return Failure{CodeNetwork, http.StatusBadGateway, fmt.Sprintf("analysis request failed: http status %d", statusErr.Code)}
		}
		return Failure{CodeNetwork, http.StatusBadGateway, "analysis request failed"}
	case errors.Is(err, context.DeadlineExceeded):
		return Failure{CodeNetwork, http.StatusGatewayTimeout, "analysis request timed out"}
	case errors.Is(err, context.Canceled):
		return Failure{CodeNetwork, 499, "analysis request cancelled"}
	default:
		return Failure{CodeInternal, http.StatusInternalServerError, "failed to analyze resume"}
	}
}
