package repository

import (
	"context"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID int64) ([]entity.Comment, error)
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id int64) error
}
