package repository

import (
	"context"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
)

// PostFilter narrows post queries. Zero fields do not filter.
// Visibility nil means drafts and hidden categories are included.
type PostFilter struct {
	ID           int64
	AuthorID     string
	CategorySlug string
	IDs          []int64
	Visibility   *blog.Visibility
}

// PostRepository lists are ordered by pub_date descending.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	// GetByID ignores visibility.
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	FindOne(ctx context.Context, f PostFilter) (*entity.Post, error)
	Count(ctx context.Context, f PostFilter) (int, error)
	List(ctx context.Context, f PostFilter, limit, offset int) ([]entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
}
