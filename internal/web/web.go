// Package web embeds the portal's HTML views.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/zerohunger/portal/internal/media"
)

// Layout wraps every page.
const Layout = "layouts/main"

//go:embed views
var views embed.FS

// NewEngine returns the view engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("title", title)
	engine.AddFunc("imageSrc", imageSrc)
	return engine
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// imageSrc lets inline image data URLs through the template's URL filter.
// Anything that is not an image data URL renders as an empty source.
func imageSrc(s string) template.URL {
	if !media.ValidDataURL(s) {
		return ""
	}
	return template.URL(s)
}
