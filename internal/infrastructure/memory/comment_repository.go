package memory

import (
	"context"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[c.PostID]; !ok {
		return blog.ErrNotFound
	}
	r.s.nextComment++
	c.ID = r.s.nextComment
	c.CreatedAt = r.s.now()
	stored := *c
	stored.Author = nil
	r.s.comments[c.ID] = stored
	return nil
}

func (r *CommentRepository) withAuthor(c entity.Comment) entity.Comment {
	if u, ok := r.s.users[c.AuthorID]; ok {
		c.Author = &u
	}
	return c
}

func (r *CommentRepository) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	c = r.withAuthor(c)
	return &c, nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID int64) ([]entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, r.withAuthor(c))
		}
	}
	blog.SortComments(out)
	return out, nil
}

func (r *CommentRepository) CountByPosts(_ context.Context, postIDs []int64) (map[int64]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	counts := make(map[int64]int, len(postIDs))
	for _, c := range r.s.comments {
		if wanted[c.PostID] {
			counts[c.PostID]++
		}
	}
	return counts, nil
}

func (r *CommentRepository) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.comments[c.ID]
	if !ok {
		return blog.ErrNotFound
	}
	old.Text = c.Text
	r.s.comments[c.ID] = old
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
