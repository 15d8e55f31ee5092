package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCategory    = errors.New("category does not exist")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmptyText          = errors.New("text is empty")
	ErrSearchUnavailable  = errors.New("search unavailable")
	ErrImagesUnavailable  = errors.New("image storage unavailable")
)
