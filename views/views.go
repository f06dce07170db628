// Package views holds the embedded HTML templates and static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"badge": booking.BadgeFor,
	"can": func(role models.Role, status models.BookingStatus, action string) bool {
		a, ok := booking.ParseAction(action)
		return ok && booking.Can(role, status, a)
	},
	"formatDate": utils.FormatDateTimeString,
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"hasString": func(list []string, v string) bool {
		for _, s := range list {
			if s == v {
				return true
			}
		}
		return false
	},
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
