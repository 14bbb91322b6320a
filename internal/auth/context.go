package auth

import (
	"context"

	"github.com/inkwell/inkwell/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userContextKey is the context key for the resolved request identity.
const userContextKey contextKey = "current_user"

// ContextWithUser stores the resolved identity in the context.
// A nil user means the request is anonymous.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the resolved identity from the context.
// Returns nil for anonymous requests.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// MustUserFromContext retrieves the resolved identity from the context.
// Panics if absent (use only behind the auth guard).
func MustUserFromContext(ctx context.Context) *model.User {
	user := UserFromContext(ctx)
	if user == nil {
		panic("user not found in context - ensure the auth guard is applied")
	}
	return user
}
