package entity

import "time"

type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  string
	Text      string
	CreatedAt time.Time

	Author *User
}
