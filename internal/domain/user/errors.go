package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with email already exists")
	ErrUsernameTaken      = errors.New("user with username already exists")
	ErrUserExists         = errors.New("user with same email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
