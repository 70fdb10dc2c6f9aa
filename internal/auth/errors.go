package auth

import "errors"

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrEmailTaken indicates a registration conflict.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrInvalidToken indicates a bearer token that failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrUserNotFound indicates a missing user record.
	ErrUserNotFound = errors.New("auth: user not found")
)
