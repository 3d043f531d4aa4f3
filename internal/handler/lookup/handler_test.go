package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TomasB/geoip/internal/data"
	"github.com/TomasB/geoip/internal/geoip"
	"github.com/gin-gonic/gin"
)

// mockLocator implements data.Locator for testing.
type mockLocator struct {
	locations map[string]*data.Location
	err       error
}

func (m *mockLocator) Locate(name string) (*data.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	loc, ok := m.locations[name]
	if !ok {
		return nil, data.ErrNotFound
	}
	return loc, nil
}

func (m *mockLocator) Describe() string {
	return "GeoIP Country Edition"
}

func (m *mockLocator) Close() error {
	return nil
}

func newMock() *mockLocator {
	return &mockLocator{locations: map[string]*data.Location{
		"1.2.3.4": {
			Name:    "1.2.3.4",
			Edition: "country",
			Summary: "United States (US)",
			Fields: []data.Field{
				{Name: "country", Value: "United States"},
				{Name: "country_code", Value: "US"},
			},
		},
	}}
}

func setupRouter(locator data.Locator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(locator)
	r.GET("/api/v1/lookup/:name", h.Lookup)
	r.POST("/api/v1/lookup", h.Batch)
	r.GET("/api/v1/database", h.Database)
	return r
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLookup_Found(t *testing.T) {
	router := setupRouter(newMock())

	w := get(router, "/api/v1/lookup/1.2.3.4")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp LocationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Edition != "country" {
		t.Errorf("expected edition country, got %s", resp.Edition)
	}
	if resp.Summary != "United States (US)" {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
	if resp.Fields["country_code"] != "US" {
		t.Errorf("expected country_code US, got %v", resp.Fields["country_code"])
	}
	if resp.Error != "" {
		t.Errorf("expected empty error, got %s", resp.Error)
	}
}

func TestLookup_NotFound(t *testing.T) {
	router := setupRouter(newMock())

	w := get(router, "/api/v1/lookup/10.0.0.1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"closed", fmt.Errorf("lookup failed: %w", geoip.ErrClosed), http.StatusServiceUnavailable},
		{"unsupported", fmt.Errorf("lookup failed: %w", geoip.ErrUnsupportedEdition), http.StatusInternalServerError},
		{"generic", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockLocator{err: tt.err})

			w := get(router, "/api/v1/lookup/1.2.3.4")
			if w.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, w.Code)
			}
			var resp LocationResponse
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp.Error == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestBatch(t *testing.T) {
	router := setupRouter(newMock())

	body, _ := json.Marshal(BatchRequest{Names: []string{"1.2.3.4", "10.0.0.1"}})
	req, _ := http.NewRequest("POST", "/api/v1/lookup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Summary != "United States (US)" {
		t.Errorf("unexpected first result %+v", resp.Results[0])
	}
	if resp.Results[1].Error != "not found" {
		t.Errorf("expected not found for second result, got %+v", resp.Results[1])
	}
}

func TestBatch_EmptyNames(t *testing.T) {
	router := setupRouter(newMock())

	req, _ := http.NewRequest("POST", "/api/v1/lookup", bytes.NewReader([]byte(`{"names":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestBatch_Unavailable(t *testing.T) {
	router := setupRouter(&mockLocator{err: geoip.ErrClosed})

	body, _ := json.Marshal(BatchRequest{Names: []string{"1.2.3.4"}})
	req, _ := http.NewRequest("POST", "/api/v1/lookup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}

func TestDatabase(t *testing.T) {
	router := setupRouter(newMock())

	w := get(router, "/api/v1/database")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	expected := `{"description":"GeoIP Country Edition"}`
	if w.Body.String() != expected {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}
