package blog

import (
	"sort"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

// AttachCommentCounts pairs each post with its comment count. Order and post
// values are preserved; posts missing from counts get zero.
func AttachCommentCounts(posts []entity.Post, counts map[int64]int) []entity.PostSummary {
	out := make([]entity.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = entity.PostSummary{Post: p, CommentCount: counts[p.ID]}
	}
	return out
}

// PostIDs collects ids in order.
func PostIDs(posts []entity.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

// SortComments orders comments by creation time, oldest first.
func SortComments(comments []entity.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
