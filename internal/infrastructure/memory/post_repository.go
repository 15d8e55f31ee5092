package memory

import (
	"context"
	"slices"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

type PostRepository struct {
	s *Store
}

func matches(p entity.Post, f repository.PostFilter) bool {
	if f.ID != 0 && p.ID != f.ID {
		return false
	}
	if f.AuthorID != "" && p.AuthorID != f.AuthorID {
		return false
	}
	if f.CategorySlug != "" && (p.Category == nil || p.Category.Slug != f.CategorySlug) {
		return false
	}
	if f.IDs != nil && !slices.Contains(f.IDs, p.ID) {
		return false
	}
	if f.Visibility != nil && !f.Visibility.Allows(p) {
		return false
	}
	return true
}

// selectPosts returns hydrated matches ordered newest first. Callers hold mu.
func (r *PostRepository) selectPosts(f repository.PostFilter) []entity.Post {
	out := make([]entity.Post, 0)
	for _, p := range r.s.posts {
		p = r.s.hydrate(p)
		if matches(p, f) {
			out = append(out, p)
		}
	}
	blog.SortByPubDateDesc(out)
	return out
}

func (r *PostRepository) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextPost++
	p.ID = r.s.nextPost
	p.CreatedAt = r.s.now()
	stored := *p
	stored.Category, stored.Author = nil, nil
	r.s.posts[p.ID] = stored
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	return r.FindOne(ctx, repository.PostFilter{ID: id})
}

func (r *PostRepository) FindOne(_ context.Context, f repository.PostFilter) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	posts := r.selectPosts(f)
	if len(posts) == 0 {
		return nil, blog.ErrNotFound
	}
	return &posts[0], nil
}

func (r *PostRepository) Count(_ context.Context, f repository.PostFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.selectPosts(f)), nil
}

func (r *PostRepository) List(_ context.Context, f repository.PostFilter, limit, offset int) ([]entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	posts := r.selectPosts(f)
	if offset >= len(posts) {
		return []entity.Post{}, nil
	}
	end := len(posts)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return posts[offset:end], nil
}

func (r *PostRepository) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.posts[p.ID]
	if !ok {
		return blog.ErrNotFound
	}
	stored := *p
	stored.AuthorID = old.AuthorID
	stored.CreatedAt = old.CreatedAt
	stored.Category, stored.Author = nil, nil
	r.s.posts[p.ID] = stored
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
