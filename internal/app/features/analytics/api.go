// internal/app/features/analytics/api.go
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	analyticssrc "github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics/remote"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeAPI handles GET /api/temples/{templeID}/analytics?period=30d.
//
// On success: 200 and
//
//	{ "success":true, "data":{ ...snapshot... } }
//
// On failure: 4xx/5xx and
//
//	{ "success":false, "message":"..." }
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	templeID := chi.URLParam(r, "templeID")

	period, err := h.requestedPeriod(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, remote.Envelope{Message: dashstate.Message(err)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Fetch())
	defer cancel()

	snap, err := h.Source.Fetch(ctx, templeID, period)
	if err != nil {
		status := apiStatus(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error("analytics api fetch failed",
				zap.String("temple_id", templeID),
				zap.String("period", string(period)),
				zap.Error(err))
		}
		writeEnvelope(w, status, remote.Envelope{Message: dashstate.Message(err)})
		return
	}
	writeEnvelope(w, http.StatusOK, remote.Envelope{Success: true, Data: &snap})
}

func apiStatus(err error) int {
	var apiErr *remote.APIError
	switch {
	case errors.Is(err, models.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, analyticssrc.ErrTempleNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env remote.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
