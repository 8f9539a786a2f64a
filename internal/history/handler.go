package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-review/internal/shared/server/respond"
)

// Handler exposes the history over HTTP.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.GET("/history/:id", h.get)
	rg.DELETE("/history", h.clear)
}

func (h *Handler) list(c *gin.Context) {
	entries := h.Store.List()
	respond.OK(c, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "INPUT_ERROR", "history id must be an integer", nil)
		return
	}
	entry, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "history entry not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch history entry", nil)
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.Store.Clear(c.Request.Context()); err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to clear history", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
