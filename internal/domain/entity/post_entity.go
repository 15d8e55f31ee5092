package entity

import "time"

type Post struct {
	ID          int64
	AuthorID    string
	CategoryID  int64
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageURL    string
	CreatedAt   time.Time

	// Joined on read; nil when the category row was not loaded.
	Category *Category
	Author   *User
}

// PostSummary is a post as it appears in list views.
type PostSummary struct {
	Post
	CommentCount int
}
