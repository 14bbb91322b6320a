// Package handler provides HTTP request handlers and page rendering.
package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is the payload passed to every template.
type pageData struct {
	User    *model.User
	Flashes []string
	Posts   []*model.Post
	Post    *model.Post
}

// Renderer executes embedded HTML templates, one parsed set per page,
// each sharing the layout.
type Renderer struct {
	tmpl     map[string]*template.Template
	sessions *session.Manager
	logger   *slog.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(sessions *session.Manager, logger *slog.Logger) (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	tmpl := make(map[string]*template.Template)
	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		tmpl[name] = t
	}

	return &Renderer{tmpl: tmpl, sessions: sessions, logger: logger}, nil
}

// render writes a page, filling in the resolved identity and draining any
// flashed messages from the session.
func (rn *Renderer) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	t, ok := rn.tmpl[name]
	if !ok {
		rn.logger.Error("template not found", slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.User = auth.UserFromContext(r.Context())
	data.Flashes = rn.sessions.Flashes(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		rn.logger.Error("template render failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
	}
}

// flashAndRedirect queues a user-visible message and sends the browser
// back to the given form so it is re-rendered with the message.
func (rn *Renderer) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, location string) {
	if err := rn.sessions.Flash(w, r, msg); err != nil {
		rn.logger.Error("flash failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "resource not found", http.StatusNotFound)
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
