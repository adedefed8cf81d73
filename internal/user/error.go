package user

import "warehouse-be/internal/apperror"

var (
	ErrEmptyLogin         = apperror.Validation("login must not be empty")
	ErrWeakPassword       = apperror.Validation("password must be at least 6 characters long and contain one of ! ? : _ - +")
	ErrInvalidRole        = apperror.Validation("unknown role")
	ErrNoUsersSelected    = apperror.Validation("no users selected")
	ErrLoginExists        = apperror.Conflict("login already exists")
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthenticated, "invalid login or password")
)
