// Package blog holds the post visibility, pagination, ownership and comment
// aggregation rules shared by every storage backend and the HTTP layer.
package blog

import "errors"

var (
	// ErrNotFound covers both missing rows and rows hidden by the visibility
	// filter; callers cannot tell them apart.
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)
