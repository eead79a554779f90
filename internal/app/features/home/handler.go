package home

import (
	"context"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/templepulse/internal/app/features/errors"
	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"github.com/dalemusser/templepulse/internal/app/system/viewdata"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pickerLimit caps how many temples the picker lists at once.
const pickerLimit = 50

// Lister lists temples for the picker.
type Lister interface {
	List(ctx context.Context, q string, limit int64) ([]models.Temple, error)
}

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Temples Lister
	Demo    bool
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

func NewHandler(temples Lister, demo bool, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Temples: temples,
		Demo:    demo,
		Log:     logger,
		ErrLog:  errLog,
	}
}

// templeRow is one picker entry.
type templeRow struct {
	Name     string
	Province string
	Href     string
}

type pageData struct {
	viewdata.BaseVM
	Query   string
	Demo    bool
	Temples []templeRow
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – temple picker                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	temples, err := h.Temples.List(ctx, q, pickerLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list temples failed", err, "Unable to load the temple list.", "/")
		return
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Temples", "/"),
		Query:   q,
		Demo:    h.Demo,
		Temples: templeRows(temples),
	}
	templates.Render(w, r, "home", data)
}

func templeRows(temples []models.Temple) []templeRow {
	rows := make([]templeRow, len(temples))
	for i, t := range temples {
		rows[i] = templeRow{
			Name:     t.Name,
			Province: t.Province,
			Href:     "/temples/" + url.PathEscape(t.TempleID) + "/dashboard",
		}
	}
	return rows
}
