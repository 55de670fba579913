// Package view renders the server's HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageRenderer renders web pages through a set of templates, one per page.
type PageRenderer struct {
	templates map[string]*template.Template
}

// NewPageRenderer parses every embedded template. Each page template is
// self-contained and keyed by its file name, e.g. "login.html".
func NewPageRenderer() (*PageRenderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		t, err := template.ParseFS(templateFS, path.Join("templates", name))
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		templates[name] = t
	}

	return &PageRenderer{templates: templates}, nil
}

// RenderTemplate renders the template with the given name.
// It returns an error if the corresponding template is not present.
func (pr *PageRenderer) RenderTemplate(wr io.Writer, name string, data any) error {
	t, ok := pr.templates[name]
	if !ok {
		return fmt.Errorf("template is missing: %s", name)
	}
	return t.ExecuteTemplate(wr, name, data)
}
