package handler

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/session"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	svc      *service.AuthService
	sessions *session.Manager
	renderer *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, sessions *session.Manager, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterForm handles GET /auth/register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, r, "register", pageData{})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.svc.Register(r.Context(), username, password)
	if err != nil {
		if service.IsUserError(err) {
			h.renderer.flashAndRedirect(w, r, err.Error(), "/auth/register")
			return
		}
		h.logger.Error("registration failed",
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// LoginForm handles GET /auth/login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, r, "login", pageData{})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.svc.Login(r.Context(), username, password)
	if err != nil {
		if service.IsUserError(err) {
			h.renderer.flashAndRedirect(w, r, err.Error(), "/auth/login")
			return
		}
		h.logger.Error("login failed",
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Clear-then-set: any prior identity is discarded before the new
	// user id is bound to the session.
	if err := h.sessions.Renew(w, r, user.ID); err != nil {
		h.logger.Error("session renew failed", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /auth/logout. Clearing is unconditional and
// idempotent whether or not a session existed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("session clear failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
