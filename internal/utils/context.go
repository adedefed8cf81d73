package utils

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserLoginKey contextKey = "login"
	UserRoleKey  contextKey = "role"
)
