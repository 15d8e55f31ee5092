package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

func TestPostWhere(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	vis := blog.VisibleAt(now)

	tests := []struct {
		name      string
		filter    repository.PostFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    repository.PostFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "visible list",
			filter:    repository.PostFilter{Visibility: &vis},
			wantWhere: " WHERE p.is_published AND p.pub_date < $1 AND c.is_published = $2",
			wantArgs:  []any{now, true},
		},
		{
			name:      "visible detail",
			filter:    repository.PostFilter{ID: 9, Visibility: &vis},
			wantWhere: " WHERE p.id = $1 AND p.is_published AND p.pub_date < $2 AND c.is_published = $3",
			wantArgs:  []any{int64(9), now, true},
		},
		{
			name:      "category and author",
			filter:    repository.PostFilter{AuthorID: "u-1", CategorySlug: "travel"},
			wantWhere: " WHERE p.author_id = $1 AND c.slug = $2",
			wantArgs:  []any{"u-1", "travel"},
		},
		{
			name:      "id set",
			filter:    repository.PostFilter{IDs: []int64{1, 2}},
			wantWhere: " WHERE p.id = ANY($1)",
			wantArgs:  []any{[]int64{1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := postWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
