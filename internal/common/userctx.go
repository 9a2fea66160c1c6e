package common

import (
	"context"
	"strings"
)

// UserHeader carries the caller's identity (profile email).
const UserHeader = "X-StockAI-User"

// UserContext holds per-request identity resolved by middleware.
// When absent (nil), callers fall back to the configured demo user.
type UserContext struct {
	UserID string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or fallback when no user
// context is present. Emails compare case-insensitively so the ID is lowercased.
func ResolveUserID(ctx context.Context, fallback string) string {
	if uc := UserContextFromContext(ctx); uc != nil && uc.UserID != "" {
		return uc.UserID
	}
	return NormalizeUserID(fallback)
}

// NormalizeUserID trims and lowercases an email-shaped user ID.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
