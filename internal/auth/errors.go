package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden      = errors.New("not enough rights")
	ErrInvalidRole    = errors.New("invalid role")
	ErrDuplicateField = errors.New("email or username already taken")
)
