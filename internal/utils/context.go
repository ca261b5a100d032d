package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserNameKey  contextKey = "username"
	UserRoleKey  contextKey = "role"
	ClientKeyKey contextKey = "client_key"
)

// SetUserContext sets the authenticated admin's identity, called by the
// auth middleware.
func SetUserContext(ctx context.Context, id uint, username string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserNameKey, username)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func GetUserNameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(UserNameKey).(string)
	return username
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

// WithClientKey attaches the storefront client identity used by the
// submission guard and draft store.
func WithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ClientKeyKey, key)
}

func ClientKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(ClientKeyKey).(string)
	return key
}
