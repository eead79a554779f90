package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Counter reports how many dashboard containers are open.
type Counter interface {
	Len() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client     *mongo.Client // nil when the analytics source does not use Mongo
	SourceKind string
	Dashboards Counter
	Log        *zap.Logger
}

// NewHandler constructs a health Handler. client may be nil.
func NewHandler(client *mongo.Client, sourceKind string, dashboards Counter, logger *zap.Logger) *Handler {
	return &Handler{
		Client:     client,
		SourceKind: sourceKind,
		Dashboards: dashboards,
		Log:        logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status     string `json:"status"`
	Source     string `json:"source"`
	Database   string `json:"database"`
	Dashboards int    `json:"dashboards"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "source":"mongo", "database":"connected", "dashboards":3 }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Source:   h.SourceKind,
		Database: "not configured",
	}
	if h.Dashboards != nil {
		resp.Dashboards = h.Dashboards.Len()
	}

	if h.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
