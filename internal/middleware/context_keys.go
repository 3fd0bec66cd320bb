package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
)

// ContextKey keeps middleware values from colliding with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id.
	UserIDCtxKey = ContextKey("user_id")
	// ClaimsCtxKey holds the verified access token claims.
	ClaimsCtxKey = ContextKey("claims")
)

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}

func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*service.Claims)
	return claims, ok && claims != nil
}
