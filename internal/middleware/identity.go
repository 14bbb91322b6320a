package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/session"
)

// UserLoader loads a user by id for identity resolution.
// Satisfied by *repository.Repository.
type UserLoader interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// Identity resolves the session token to a user once per request, before
// any handler runs, and stores the result in the request context.
//
// A session whose user id no longer matches a row resolves to anonymous,
// not an error: stale tokens are expected after a database reset.
func Identity(sm *session.Manager, users UserLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sm.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, repository.ErrUserNotFound) {
					logger.Error("identity lookup failed",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.Int64("user_id", userID),
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
