package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

func TestPostRepositoryVisibility(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.SetClock(func() time.Time { return now })

	author := &entity.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, s.Users().Create(ctx, author))

	open := &entity.Category{Slug: "open", IsPublished: true}
	closed := &entity.Category{Slug: "closed", IsPublished: false}
	s.AddCategory(open)
	s.AddCategory(closed)

	posts := []*entity.Post{
		{AuthorID: author.ID, CategoryID: open.ID, Title: "old", IsPublished: true, PubDate: now.Add(-48 * time.Hour)},
		{AuthorID: author.ID, CategoryID: open.ID, Title: "new", IsPublished: true, PubDate: now.Add(-time.Hour)},
		{AuthorID: author.ID, CategoryID: open.ID, Title: "draft", IsPublished: false, PubDate: now.Add(-time.Hour)},
		{AuthorID: author.ID, CategoryID: closed.ID, Title: "hidden category", IsPublished: true, PubDate: now.Add(-time.Hour)},
		{AuthorID: author.ID, CategoryID: open.ID, Title: "scheduled", IsPublished: true, PubDate: now.Add(time.Hour)},
	}
	for _, p := range posts {
		require.NoError(t, s.Posts().Create(ctx, p))
	}

	vis := blog.VisibleAt(now)
	got, err := s.Posts().List(ctx, repository.PostFilter{Visibility: &vis}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, "old", got[1].Title)
	require.NotNil(t, got[0].Category)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "alice", got[0].Author.Username)

	n, err := s.Posts().Count(ctx, repository.PostFilter{AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = s.Posts().FindOne(ctx, repository.PostFilter{ID: posts[2].ID, Visibility: &vis})
	assert.ErrorIs(t, err, blog.ErrNotFound)

	p, err := s.Posts().GetByID(ctx, posts[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", p.Title)
}

func TestPostDeleteRemovesComments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := &entity.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, s.Users().Create(ctx, u))
	cat := &entity.Category{Slug: "c", IsPublished: true}
	s.AddCategory(cat)
	p := &entity.Post{AuthorID: u.ID, CategoryID: cat.ID, Title: "t", IsPublished: true}
	require.NoError(t, s.Posts().Create(ctx, p))
	c := &entity.Comment{PostID: p.ID, AuthorID: u.ID, Text: "hi"}
	require.NoError(t, s.Comments().Create(ctx, c))

	require.NoError(t, s.Posts().Delete(ctx, p.ID))

	_, err := s.Comments().GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, blog.ErrNotFound)
	assert.ErrorIs(t, s.Posts().Delete(ctx, p.ID), blog.ErrNotFound)
}

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{Username: "a", Email: "a@example.com"}))

	err := s.Users().Create(ctx, &entity.User{Username: "a", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	err = s.Users().Create(ctx, &entity.User{Username: "b", Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}
