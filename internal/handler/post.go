package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/service"
)

// PostHandler handles the post listing and CRUD pages.
type PostHandler struct {
	svc      *service.PostService
	renderer *Renderer
	logger   *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, renderer *Renderer, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:      svc,
		renderer: renderer,
		logger:   logger,
	}
}

// Index handles GET /. All posts, newest first.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.renderer.render(w, r, "index", pageData{Posts: posts})
}

// Show handles GET /{id}, the public single-post view. No ownership
// check: anyone may read any post.
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	post, err := h.svc.Fetch(r.Context(), id, false, nil)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.renderer.render(w, r, "post", pageData{Post: post})
}

// CreateForm handles GET /create.
func (h *PostHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, r, "create", pageData{})
}

// Create handles POST /create.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	post, err := h.svc.Create(r.Context(), r.FormValue("title"), r.FormValue("body"), user)
	if err != nil {
		if service.IsUserError(err) {
			h.renderer.flashAndRedirect(w, r, err.Error(), "/create")
			return
		}
		h.serviceError(w, r, err)
		return
	}

	h.logger.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", user.ID),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateForm handles GET /{id}/update. The ownership check runs here too
// so a non-author never sees the edit form.
func (h *PostHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	user := auth.MustUserFromContext(r.Context())
	post, err := h.svc.Fetch(r.Context(), id, true, user)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.renderer.render(w, r, "update", pageData{Post: post})
}

// Update handles POST /{id}/update.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	user := auth.MustUserFromContext(r.Context())
	err := h.svc.Update(r.Context(), id, r.FormValue("title"), r.FormValue("body"), user)
	if err != nil {
		if service.IsUserError(err) {
			h.renderer.flashAndRedirect(w, r, err.Error(), fmt.Sprintf("/%d/update", id))
			return
		}
		h.serviceError(w, r, err)
		return
	}

	h.logger.Info("post updated",
		slog.Int64("post_id", id),
		slog.Int64("author_id", user.ID),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles POST /{id}/delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	user := auth.MustUserFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), id, user); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.logger.Info("post deleted",
		slog.Int64("post_id", id),
		slog.Int64("author_id", user.ID),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// serviceError maps service errors to HTTP responses.
func (h *PostHandler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		h.logger.Error("post operation failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// postID parses the {id} route parameter.
func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
