package http

import (
	"context"

	"kerramientas-backend/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user-id"

// WithUserID returns a context carrying the authenticated user's id.
// The auth middleware is the only writer.
func WithUserID(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user id set by the auth
// middleware.
func UserIDFromContext(ctx context.Context) (int32, error) {
	userID, ok := ctx.Value(userIDKey).(int32)
	if !ok {
		return 0, domain.NewUnauthorizedError("no authenticated user in request context")
	}
	return userID, nil
}
