// internal/app/features/devotees/templates.go
package devotees

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "devotees",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
