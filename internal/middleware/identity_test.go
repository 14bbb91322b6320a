package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/session"
	"github.com/inkwell/inkwell/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loginRequest returns a request carrying a session cookie bound to userID.
func loginRequest(t *testing.T, sm *session.Manager, userID int64) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := sm.Renew(rec, req, userID); err != nil {
		t.Fatalf("Renew failed: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestIdentity_Anonymous(t *testing.T) {
	sm := session.NewManager([]byte("secret"), "s", time.Hour, false)
	store := testutil.NewMemStore()

	var resolved *model.User
	called := false
	h := Identity(sm, store, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		resolved = auth.UserFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Fatal("handler not invoked")
	}
	if resolved != nil {
		t.Errorf("expected anonymous, got %+v", resolved)
	}
}

func TestIdentity_ResolvesUser(t *testing.T) {
	sm := session.NewManager([]byte("secret"), "s", time.Hour, false)
	store := testutil.NewMemStore()

	user, err := store.CreateUser(context.Background(), "alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	var resolved *model.User
	h := Identity(sm, store, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = auth.UserFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginRequest(t, sm, user.ID))

	if resolved == nil {
		t.Fatal("expected resolved identity")
	}
	if resolved.ID != user.ID || resolved.Username != "alice" {
		t.Errorf("resolved = %+v, want alice (%d)", resolved, user.ID)
	}
}

func TestIdentity_StaleSessionIsAnonymous(t *testing.T) {
	sm := session.NewManager([]byte("secret"), "s", time.Hour, false)
	store := testutil.NewMemStore()

	// Session references a user id with no matching row. Resolution must
	// fall back to anonymous, not fail the request.
	var resolved *model.User
	status := 0
	h := Identity(sm, store, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginRequest(t, sm, 999))
	status = rec.Code

	if resolved != nil {
		t.Errorf("stale session should resolve to anonymous, got %+v", resolved)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}
