package user

import "bookcatalog/internal/shared/apperror"

var (
	ErrUserNotFound       = apperror.New(apperror.NotFound, "user not found")
	ErrUsernameExists     = apperror.New(apperror.Conflict, "user already exists")
	ErrEmailExists        = apperror.New(apperror.Conflict, "email already registered")
	ErrInvalidRole        = apperror.New(apperror.Validation, "invalid role, must be client or admin")
	ErrInvalidCredentials = apperror.New(apperror.InvalidCredential, "invalid credentials")
)
