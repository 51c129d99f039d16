package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrUsernameTaken      = errors.New("that username is taken, please choose a different one")
	ErrEmailTaken         = errors.New("that email is taken, please choose a different one")
	ErrInvalidCredentials = errors.New("login unsuccessful, please check email and password")
	ErrUserNotFound       = errors.New("user not found")

	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("operation is not permitted for this user")

	ErrInvalidToken = errors.New("reset token is invalid or expired")
	ErrInvalidMedia = errors.New("unsupported image file")

	ErrTokenCreationFailed = errors.New("reset token creation failed")
)
