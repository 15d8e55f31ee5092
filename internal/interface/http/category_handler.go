package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/pkg/response"
)

func (h *BlogHandler) CategoryPosts(c *gin.Context) {
	cp, err := h.Blog.CategoryPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	out := toPostPage(cp.Posts)
	response.Success(c, http.StatusOK, gin.H{
		"category": toCategory(cp.Category),
		"posts":    out.Items,
	}, "category", out.Meta)
}

// Profile lists a user's posts; the viewer's own page includes unpublished ones.
func (h *BlogHandler) Profile(c *gin.Context) {
	viewer, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	pp, err := h.Blog.Profile(c.Request.Context(), viewer, c.Param("username"), c.Query("page"))
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	out := toPostPage(pp.Posts)
	self := blog.Check(viewer, pp.User.ID) == blog.Allow
	response.Success(c, http.StatusOK, gin.H{
		"profile": toUser(pp.User, self),
		"posts":   out.Items,
	}, "profile", out.Meta)
}
