package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/pkg/response"
)

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *BlogHandler) CreateComment(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Blog.CreateComment(c.Request.Context(), actor, postID, req.Text)
	if err != nil {
		writeError(c, h.Logger, err, postID)
		return
	}
	response.Success(c, http.StatusCreated, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "comment created", nil)
}

func (h *BlogHandler) UpdateComment(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.Blog.CheckCommentOwner(c.Request.Context(), actor, postID, commentID); err != nil {
		writeError(c, h.Logger, err, postID)
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Blog.UpdateComment(c.Request.Context(), actor, postID, commentID, req.Text)
	if err != nil {
		writeError(c, h.Logger, err, postID)
		return
	}
	response.Success(c, http.StatusOK, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "comment updated", nil)
}

func (h *BlogHandler) DeleteComment(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	res, err := h.Blog.DeleteComment(c.Request.Context(), actor, postID, commentID)
	if err != nil {
		writeError(c, h.Logger, err, postID)
		return
	}
	response.Success(c, http.StatusOK, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "comment deleted", nil)
}
