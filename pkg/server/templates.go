package server

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/index.html
var templatesFS embed.FS

// indexData is the payload for the index page.
type indexData struct {
	Notices  []string
	Image    []byte
	Filename string
}

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		// pngSrc builds an inline data URI; typed as template.URL so
		// html/template does not reject the data: scheme.
		"pngSrc": func(data []byte) template.URL {
			return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
		},
	}
	return &renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")),
	}
}

// Render implements echo.Renderer.
func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
