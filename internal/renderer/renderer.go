package renderer

import (
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer implements echo.Renderer
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a new TemplateRenderer with pre-parsed templates
func New() *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}
	r.parseTemplates()
	return r
}

func (t *TemplateRenderer) parseTemplates() {
	parse := func(name, pageFile string) {
		t.Templates[name] = template.Must(template.ParseFiles(
			"views/layouts/base.html",
			"views/pages/"+pageFile,
		))
	}

	parse("gallery", "gallery.html")
}

// Render renders a template document. Pages execute the "base" layout block.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}
