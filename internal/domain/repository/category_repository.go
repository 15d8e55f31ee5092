package repository

import (
	"context"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
}
