package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a transient notice surfaced on the next rendered page
type Flash struct {
	Category string // success, error or warning
	Message  string
}

// PageData is the payload every template receives
type PageData struct {
	Title         string
	Authenticated bool
	IsAdmin       bool
	Flash         *Flash
	Form          interface{}
	Errors        map[string]string
	Data          interface{}
}

// FieldError returns the error message for a form field, if any
func (d *PageData) FieldError(field string) string {
	return d.Errors[field]
}

// Renderer renders embedded HTML templates. Each page template defines a
// "content" block composed into the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all embedded templates
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	// Files starting with "_" are partials shared by every page.
	shared := []string{"templates/layout.html"}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "_") {
			shared = append(shared, "templates/"+entry.Name())
		}
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == "layout.html" || strings.HasPrefix(name, "_") {
			continue
		}
		tmpl, err := template.ParseFS(templateFS, append(shared, "templates/"+name)...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. The template is executed into a buffer
// first so a failure never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data *PageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	if data == nil {
		data = &PageData{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
