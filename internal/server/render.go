package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"capstone-blog/internal/blog"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer holds one parsed template set per view.
type Renderer struct {
	views map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{views: make(map[string]*template.Template)}
	for _, view := range []string{blog.ViewIndex, blog.ViewPost, blog.ViewEdit, blog.ViewNotFound} {
		tmpl, err := template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/post_card.html",
			"templates/"+view+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", view, err)
		}
		r.views[view] = tmpl
	}
	return r, nil
}

// Render executes view into a buffer first so a template error never
// leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, out blog.Outcome) error {
	tmpl, ok := r.views[out.View]
	if !ok {
		return fmt.Errorf("unknown view %q", out.View)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", viewData(out)); err != nil {
		return fmt.Errorf("execute %s template: %w", out.View, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func httpStatus(s blog.Status) int {
	switch s {
	case blog.StatusClientError:
		return http.StatusBadRequest
	case blog.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}
