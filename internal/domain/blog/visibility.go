package blog

import (
	"sort"
	"time"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

// Visibility decides which posts are publicly listable at a moment in time.
type Visibility struct {
	Now               time.Time
	CategoryPublished bool
}

// VisibleAt returns the filter used by every public view: published posts
// with pub_date strictly before now, inside a published category.
func VisibleAt(now time.Time) Visibility {
	return Visibility{Now: now, CategoryPublished: true}
}

// Allows reports whether p passes the filter. A post without a loaded
// category never passes.
func (v Visibility) Allows(p entity.Post) bool {
	if !p.IsPublished || !p.PubDate.Before(v.Now) {
		return false
	}
	if p.Category == nil {
		return false
	}
	return p.Category.IsPublished == v.CategoryPublished
}

// Filter returns the posts passing the filter, newest pub_date first.
// The input slice is not modified.
func (v Visibility) Filter(posts []entity.Post) []entity.Post {
	out := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if v.Allows(p) {
			out = append(out, p)
		}
	}
	SortByPubDateDesc(out)
	return out
}

// SortByPubDateDesc orders posts newest first; ties keep the higher id first.
func SortByPubDateDesc(posts []entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}
