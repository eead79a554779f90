// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is shown in the page header and the browser title.
const SiteName = "TemplePulse"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	Year int
}

// NewBaseVM builds the common page fields. BackURL honours a safe return
// parameter on the request and falls back to backDefault.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
	}
}
