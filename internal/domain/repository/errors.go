package repository

import "errors"

// Unique-constraint violations reported by repositories.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)
