package lookup

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TomasB/geoip/internal/data"
	"github.com/TomasB/geoip/internal/geoip"
	"github.com/gin-gonic/gin"
)

// LocationResponse represents the JSON response for a single lookup.
type LocationResponse struct {
	Name    string         `json:"name"`
	Edition string         `json:"edition,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// BatchRequest represents the JSON body for a batch lookup.
type BatchRequest struct {
	Names []string `json:"names" binding:"required,min=1,max=100"`
}

// BatchResponse represents the JSON response for a batch lookup.
type BatchResponse struct {
	Results []LocationResponse `json:"results"`
	Error   string             `json:"error,omitempty"`
}

// DatabaseResponse describes the loaded database.
type DatabaseResponse struct {
	Description string `json:"description"`
}

// Handler manages host lookup endpoints.
type Handler struct {
	locator data.Locator
}

// NewHandler creates a new lookup handler with the given Locator.
func NewHandler(locator data.Locator) *Handler {
	return &Handler{locator: locator}
}

// Lookup handles GET /api/v1/lookup/:name
func (h *Handler) Lookup(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, LocationResponse{Error: "name is required"})
		return
	}

	slog.Debug("lookup request received", "name", name)

	resp, code := h.locate(name)
	c.JSON(code, resp)
}

// Batch handles POST /api/v1/lookup
func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BatchResponse{
			Error: "invalid request: " + err.Error(),
		})
		return
	}

	results := make([]LocationResponse, 0, len(req.Names))
	for _, name := range req.Names {
		resp, code := h.locate(name)
		if code == http.StatusServiceUnavailable {
			c.JSON(code, BatchResponse{Error: resp.Error})
			return
		}
		results = append(results, resp)
	}
	c.JSON(http.StatusOK, BatchResponse{Results: results})
}

// Database handles GET /api/v1/database
func (h *Handler) Database(c *gin.Context) {
	c.JSON(http.StatusOK, DatabaseResponse{Description: h.locator.Describe()})
}

func (h *Handler) locate(name string) (LocationResponse, int) {
	loc, err := h.locator.Locate(name)
	switch {
	case err == nil:
		return LocationResponse{
			Name:    loc.Name,
			Edition: loc.Edition,
			Summary: loc.Summary,
			Fields:  loc.Map(),
		}, http.StatusOK
	case errors.Is(err, data.ErrNotFound):
		return LocationResponse{Name: name, Error: "not found"}, http.StatusNotFound
	case errors.Is(err, geoip.ErrClosed):
		return LocationResponse{Name: name, Error: "database unavailable"}, http.StatusServiceUnavailable
	default:
		slog.Error("lookup failed", "name", name, "error", err)
		return LocationResponse{Name: name, Error: "lookup failed"}, http.StatusInternalServerError
	}
}
