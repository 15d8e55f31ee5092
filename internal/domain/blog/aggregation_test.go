package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

func TestAttachCommentCounts(t *testing.T) {
	posts := []entity.Post{{ID: 7, Title: "a"}, {ID: 3, Title: "b"}, {ID: 9, Title: "c"}}

	got := AttachCommentCounts(posts, map[int64]int{7: 2, 9: 5})

	require.Len(t, got, 3)
	assert.Equal(t, posts[0], got[0].Post)
	assert.Equal(t, 2, got[0].CommentCount)
	assert.Equal(t, 0, got[1].CommentCount)
	assert.Equal(t, 5, got[2].CommentCount)
	assert.Equal(t, []int64{7, 3, 9}, PostIDs(posts))
}

func TestSortComments(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	comments := []entity.Comment{
		{ID: 3, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 2, CreatedAt: base},
		{ID: 1, CreatedAt: base},
	}

	SortComments(comments)

	assert.Equal(t, int64(1), comments[0].ID)
	assert.Equal(t, int64(2), comments[1].ID)
	assert.Equal(t, int64(3), comments[2].ID)
}
