package entity

import "time"

// Category groups posts. Unpublished categories hide all of their posts.
type Category struct {
	ID          int64
	Title       string
	Description string
	Slug        string
	IsPublished bool
	CreatedAt   time.Time
}
