package user

import "littlelemon-be/internal/apperr"

var (
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrUsernameExists     = apperr.Conflict("username already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "unable to log in with provided credentials")
	ErrUsernameRequired   = apperr.BadRequest("username is required")
	ErrPasswordTooShort   = apperr.BadRequest("password must be at least 8 characters")
)
