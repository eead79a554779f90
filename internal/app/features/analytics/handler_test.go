package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/features/analytics"
	uierrors "github.com/dalemusser/templepulse/internal/app/features/errors"
	analyticssrc "github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/viewer"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/templepulse/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(src analyticssrc.Source) *analytics.Handler {
	logger := zap.NewNop()
	reg := dashstate.NewRegistry(func() *dashstate.Container {
		return dashstate.New(src, time.Second, logger)
	})
	return analytics.NewHandler(reg, src, analyticssrc.DemoDirectory{}, format.New("en"), models.Period30d,
		uierrors.NewErrorLogger(logger), logger)
}

func serveAPI(t *testing.T, h *analytics.Handler, templeID, rawQuery string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/temples/"+templeID+"/analytics?"+rawQuery, nil)
	req = testutil.WithChiURLParam(req, "templeID", templeID)
	rec := httptest.NewRecorder()
	h.ServeAPI(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestServeAPI_Success(t *testing.T) {
	h := newTestHandler(analyticssrc.NewMockSource(analyticssrc.Options{}))

	rec, body := serveAPI(t, h, "wat-pho", "period=7d")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data missing: %v", body)
	}
	if data["period"] != "7d" || data["temple_id"] != "wat-pho" {
		t.Errorf("scope = %v / %v", data["temple_id"], data["period"])
	}
	if trend, _ := data["activity_trend"].([]any); len(trend) != 7 {
		t.Errorf("trend points = %d, want 7", len(trend))
	}
}

func TestServeAPI_DefaultPeriod(t *testing.T) {
	h := newTestHandler(analyticssrc.NewMockSource(analyticssrc.Options{}))

	_, body := serveAPI(t, h, "wat-pho", "")
	data, _ := body["data"].(map[string]any)
	if data["period"] != "30d" {
		t.Errorf("period = %v, want 30d", data["period"])
	}
}

func TestServeAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		query  string
		status int
		msg    string
	}{
		{"bad period", nil, "period=2w", http.StatusBadRequest, "Please choose one of the listed periods."},
		{"unknown temple", analyticssrc.ErrTempleNotFound, "", http.StatusNotFound, "This temple has no analytics yet."},
		{"timeout", context.DeadlineExceeded, "", http.StatusGatewayTimeout, "The analytics service took too long to respond."},
		{"other", errors.New("connection refused"), "", http.StatusInternalServerError, dashstate.DefaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := analyticssrc.SourceFunc(func(context.Context, string, models.Period) (models.AnalyticsSnapshot, error) {
				return models.AnalyticsSnapshot{}, tt.err
			})
			h := newTestHandler(src)

			rec, body := serveAPI(t, h, "wat-pho", tt.query)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if body["success"] != false {
				t.Errorf("success = %v", body["success"])
			}
			if body["message"] != tt.msg {
				t.Errorf("message = %v, want %q", body["message"], tt.msg)
			}
		})
	}
}

func TestServePanel_LoadsIntoViewerContainer(t *testing.T) {
	calls := 0
	src := analyticssrc.SourceFunc(func(_ context.Context, templeID string, p models.Period) (models.AnalyticsSnapshot, error) {
		calls++
		return models.AnalyticsSnapshot{TempleID: templeID, Period: p}, nil
	})
	h := newTestHandler(src)

	req := httptest.NewRequest(http.MethodGet, "/temples/wat-pho/dashboard/panel?period=90d", nil)
	req = testutil.WithChiURLParam(req, "templeID", "wat-pho")
	req = viewer.WithTestViewer(req, "viewer-1")
	rec := httptest.NewRecorder()
	useTemplates(t)
	h.ServePanel(rec, req)

	if calls != 1 {
		t.Fatalf("source calls = %d, want 1", calls)
	}
	c, ok := h.Registry.Peek("viewer-1", "wat-pho")
	if !ok {
		t.Fatal("no container registered for viewer")
	}
	st := c.State()
	if st.Snapshot == nil || st.Snapshot.Period != models.Period90d {
		t.Errorf("container state = %+v", st)
	}
	if got := rec.Header().Get("HX-Push-Url"); got != "/temples/wat-pho/dashboard?period=90d" {
		t.Errorf("HX-Push-Url = %q", got)
	}
}

func TestServePanel_InvalidPeriodDoesNotFetch(t *testing.T) {
	calls := 0
	src := analyticssrc.SourceFunc(func(context.Context, string, models.Period) (models.AnalyticsSnapshot, error) {
		calls++
		return models.AnalyticsSnapshot{}, nil
	})
	h := newTestHandler(src)

	req := httptest.NewRequest(http.MethodGet, "/temples/wat-pho/dashboard/panel?period=forever", nil)
	req = testutil.WithChiURLParam(req, "templeID", "wat-pho")
	rec := httptest.NewRecorder()
	useTemplates(t)
	h.ServePanel(rec, req)

	if calls != 0 {
		t.Errorf("source calls = %d, want 0", calls)
	}
	if body := rec.Body.String(); !strings.Contains(body, `role="alert"`) {
		t.Errorf("invalid period should render the error alert: %s", body)
	}
}
