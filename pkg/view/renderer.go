package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/gin-gonic/gin/render"
)

const (
	CartTemplate     = "cart.tmpl"
	ProductsTemplate = "products.tmpl"
	HeaderTemplate   = "header.tmpl"
	SignupTemplate   = "signup.tmpl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer serves the embedded fragment templates. It satisfies gin's render.HTMLRender.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.templates,
		Name:     name,
		Data:     data,
	}
}

// Execute renders a fragment outside a request, e.g. from the CLI.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
