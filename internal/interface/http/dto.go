package handlers

import (
	"time"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
)

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// authorDTO is the public part of a user shown next to posts and comments.
type authorDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type categoryDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
}

type postDTO struct {
	ID           int64        `json:"id"`
	URL          string       `json:"url"`
	Title        string       `json:"title"`
	Text         string       `json:"text"`
	PubDate      time.Time    `json:"pub_date"`
	IsPublished  bool         `json:"is_published"`
	ImageURL     string       `json:"image_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	Author       *authorDTO   `json:"author,omitempty"`
	Category     *categoryDTO `json:"category,omitempty"`
	CommentCount int          `json:"comment_count"`
}

type commentDTO struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    *authorDTO `json:"author,omitempty"`
}

// toUser includes the e-mail only for the user's own profile.
func toUser(u entity.User, self bool) userDTO {
	d := userDTO{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, CreatedAt: u.CreatedAt}
	if self {
		d.Email = u.Email
	}
	return d
}

func toAuthor(u *entity.User) *authorDTO {
	if u == nil {
		return nil
	}
	return &authorDTO{ID: u.ID, Username: u.Username}
}

func toCategory(c entity.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Title: c.Title, Description: c.Description, Slug: c.Slug, URL: blog.CategoryPath(c.Slug)}
}

func toPost(p entity.Post, comments int) postDTO {
	d := postDTO{
		ID:           p.ID,
		URL:          blog.PostDetailPath(p.ID),
		Title:        p.Title,
		Text:         p.Text,
		PubDate:      p.PubDate,
		IsPublished:  p.IsPublished,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		Author:       toAuthor(p.Author),
		CommentCount: comments,
	}
	if p.Category != nil {
		cat := toCategory(*p.Category)
		d.Category = &cat
	}
	return d
}

func toComment(c entity.Comment) commentDTO {
	return commentDTO{ID: c.ID, PostID: c.PostID, Text: c.Text, CreatedAt: c.CreatedAt, Author: toAuthor(c.Author)}
}

func toPostPage(p blog.Page[entity.PostSummary]) blog.Page[postDTO] {
	items := make([]postDTO, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, toPost(s.Post, s.CommentCount))
	}
	return blog.Page[postDTO]{Items: items, Meta: p.Meta}
}
