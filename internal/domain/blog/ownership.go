package blog

import "github.com/oksasatya/blogicum/internal/domain/entity"

// Decision is the outcome of an ownership check.
type Decision int

const (
	DenyUnauthenticated Decision = iota
	DenyNotOwner
	Allow
)

// Check compares the acting user with a resource author. A nil actor or one
// without an id is denied before the comparison runs.
func Check(actor *entity.User, authorID string) Decision {
	if actor == nil || actor.ID == "" {
		return DenyUnauthenticated
	}
	if actor.ID != authorID {
		return DenyNotOwner
	}
	return Allow
}

// Authorize is Check expressed as an error for mutation handlers.
func Authorize(actor *entity.User, authorID string) error {
	switch Check(actor, authorID) {
	case Allow:
		return nil
	case DenyNotOwner:
		return ErrForbidden
	default:
		return ErrUnauthenticated
	}
}

// RequireActor denies anonymous actors.
func RequireActor(actor *entity.User) error {
	if actor == nil || actor.ID == "" {
		return ErrUnauthenticated
	}
	return nil
}
