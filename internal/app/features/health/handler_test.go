package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/templepulse/internal/app/features/health"
	"github.com/dalemusser/templepulse/internal/testutil"
	"go.uber.org/zap"
)

type fixedCounter int

func (c fixedCounter) Len() int { return int(c) }

type response struct {
	Status     string `json:"status"`
	Source     string `json:"source"`
	Database   string `json:"database"`
	Dashboards int    `json:"dashboards"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), "mongo", fixedCounter(2), zap.NewNop())

	rec, resp := serve(t, h)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("got status=%q database=%q", resp.Status, resp.Database)
	}
	if resp.Dashboards != 2 {
		t.Errorf("dashboards: got %d, want 2", resp.Dashboards)
	}
}

func TestServe_WithoutDatabase(t *testing.T) {
	h := health.NewHandler(nil, "mock", nil, zap.NewNop())

	rec, resp := serve(t, h)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Source != "mock" {
		t.Errorf("source: got %q, want mock", resp.Source)
	}
	if resp.Database != "not configured" {
		t.Errorf("database: got %q, want %q", resp.Database, "not configured")
	}
}
