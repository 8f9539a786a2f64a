package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-review/internal/shared/server/middleware"
	"resume-review/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
}

// multipartOverhead is the body allowance on top of the file limit for
// boundaries, part headers and other form fields.
const multipartOverhead = 64 << 10

// cappedBody remembers whether the underlying MaxBytesReader hit its limit,
// since multipart parsing does not always wrap the read error.
type cappedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *cappedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		b.exceeded = true
	}
	return n, err
}

func (h *Handler) analyze(c *gin.Context) {
	limit := h.Svc.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	tooLarge := fmt.Errorf("%w (max %s)", ErrFileTooLarge, formatLimit(limit))

	bodyLimit := limit + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		h.fail(c, tooLarge)
		return
	}
	body := &cappedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)}
	c.Request.Body = body

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if body.exceeded || errors.As(err, &maxErr) {
			h.fail(c, tooLarge)
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeInput, "file is required", []map[string]string{
			{"field": "file", "issue": "missing"},
		})
		return
	}

	if fileHeader.Size > limit {
		h.fail(c, tooLarge)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeInput, "could not read upload", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeInput, "could not read upload", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	entry, err := h.Svc.Analyze(ctx, Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, entry)
}

func (h *Handler) fail(c *gin.Context, err error) {
	failure := Classify(err)
	var details any
	if errors.Is(err, ErrInput) {
		details = []map[string]string{{"field": "file", "issue": failure.Message}}
	}
	respond.Error(c, failure.Status, failure.Code, failure.Message, details)
}
