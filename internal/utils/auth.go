package utils

import "context"

// SetUserContext stores the authenticated identity (called by middleware).
func SetUserContext(ctx context.Context, id int64, login string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserLoginKey, login)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

func GetUserLoginFromContext(ctx context.Context) string {
	login, _ := ctx.Value(UserLoginKey).(string)
	return login
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}
