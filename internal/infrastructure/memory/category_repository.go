package memory

import (
	"context"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, blog.ErrNotFound
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
