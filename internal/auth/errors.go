package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("auth: missing username or password")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrMissingToken       = errors.New("auth: no token provided")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrInvalidToken       = errors.New("auth: invalid token")
)
