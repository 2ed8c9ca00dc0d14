// Package views renders the site's HTML pages from embedded templates.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"portfolio-site/internal/models"
)

const (
	layoutFile   = "layout.html"
	partialsFile = "partials.html"
)

// ContactForm carries the contact page's form state.
type ContactForm struct {
	Name        string
	Email       string
	Message     string
	Errors      map[string]string
	Sent        bool
	Unavailable bool
	Failed      bool
}

// ErrorPage describes an error shown with the site layout.
type ErrorPage struct {
	Title   string
	Message string
}

// PageData is everything a page template can read.
type PageData struct {
	Page    string
	Theme   models.Theme
	Stack   []models.StackEntry
	Posts   []models.BlogPost
	Post    *models.BlogPost
	Slug    string
	Contact ContactForm
	Error   ErrorPage
	Year    int
}

var funcs = template.FuncMap{
	// svg marks icon markup read from the server's own asset directory as safe.
	"svg": func(s string) template.HTML { return template.HTML(s) },
	"date": func(t time.Time, layout string) string {
		return t.Format(layout)
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template in fsys together with the shared layout and partials.
func New(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		if name == layoutFile || name == partialsFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, layoutFile, partialsFile, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = tmpl
	}

	if _, ok := r.pages["error"]; !ok {
		return nil, fmt.Errorf("missing error.html template")
	}
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render writes the named page with status. Output is buffered so a template
// failure never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.Page = page
	if data.Theme == "" {
		data.Theme = models.ThemeLight
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execution failed", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
