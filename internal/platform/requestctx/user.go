// Package requestctx carries per-request resolved values through context.
//
// The session middleware verifies the credential cookie at most once per
// incoming request and stores the resolved user id here; handlers read the
// stored value instead of re-verifying, which makes the memoization scope
// explicit and bounded by the request lifetime.
package requestctx

import "context"

// userIDContextKey is the context key for the resolved session user.
type userIDContextKey struct{}

// WithUserID stores a user identifier in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext returns the user identifier stored in context.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(userIDContextKey{}).(string)
	return value
}
