package application

import (
	"context"
	"io"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

// PostIndex is the full-text index of posts. Results are candidates only;
// visibility is re-checked against the repository.
type PostIndex interface {
	IndexPost(ctx context.Context, p entity.Post) error
	DeletePost(ctx context.Context, id int64) error
	SearchPostIDs(ctx context.Context, q string, limit int) ([]int64, error)
}

// Publisher enqueues JSON jobs (implemented by helpers.RabbitPublisher).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ImageStore uploads post images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
