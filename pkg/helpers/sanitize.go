package helpers

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Post bodies may carry basic formatting; comments are plain text.
var (
	postPolicy    = bluemonday.UGCPolicy()
	commentPolicy = bluemonday.StrictPolicy()
)

// SanitizePostText strips unsafe markup from a post body.
func SanitizePostText(s string) string {
	return strings.TrimSpace(postPolicy.Sanitize(s))
}

// SanitizeComment strips all markup from a comment.
func SanitizeComment(s string) string {
	return strings.TrimSpace(commentPolicy.Sanitize(s))
}
