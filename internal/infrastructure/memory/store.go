// Package memory is a process-local implementation of the blog repositories.
// It applies the same visibility rules as the SQL queries and is used for
// local development and tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

type Store struct {
	mu sync.RWMutex

	users      map[string]entity.User
	categories map[int64]entity.Category
	posts      map[int64]entity.Post
	comments   map[int64]entity.Comment

	nextCategory int64
	nextPost     int64
	nextComment  int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		categories: make(map[int64]entity.Category),
		posts:      make(map[int64]entity.Post),
		comments:   make(map[int64]entity.Comment),
		now:        time.Now,
	}
}

// SetClock overrides the clock used for created_at stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Posts() *PostRepository         { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository   { return &CommentRepository{s: s} }

// AddCategory inserts a category and assigns its id. Categories have no
// API write path; this is how seeds and tests create them.
func (s *Store) AddCategory(c *entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCategory++
	c.ID = s.nextCategory
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.categories[c.ID] = *c
}

func newUserID() string { return uuid.NewString() }

// hydrate attaches copies of the post's category and author. Callers hold mu.
func (s *Store) hydrate(p entity.Post) entity.Post {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = &c
	} else {
		p.Category = nil
	}
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = &u
	} else {
		p.Author = nil
	}
	return p
}
