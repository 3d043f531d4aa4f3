package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a database is loaded and which one.
type Checker interface {
	Ready() error
	Describe() string
}

// Handler manages health check endpoints
type Handler struct {
	checker Checker
}

// NewHandler creates a new health check handler. A nil checker is always
// ready.
func NewHandler(checker Checker) *Handler {
	return &Handler{checker: checker}
}

// Health is the liveness probe endpoint
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready is the readiness probe endpoint. It fails while no database is
// loaded.
// GET /ready
func (h *Handler) Ready(c *gin.Context) {
	if h.checker == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	if err := h.checker.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": h.checker.Describe(),
	})
}
