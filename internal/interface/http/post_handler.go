package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/internal/application"
	"github.com/oksasatya/blogicum/pkg/response"
)

const maxImageSize = 5 << 20

type postRequest struct {
	Title       string    `json:"title" binding:"required,max=256"`
	Text        string    `json:"text" binding:"required"`
	PubDate     time.Time `json:"pub_date" binding:"required"`
	CategoryID  int64     `json:"category_id" binding:"required,gt=0"`
	IsPublished *bool     `json:"is_published"`
}

func (r postRequest) fields() application.PostFields {
	published := true
	if r.IsPublished != nil {
		published = *r.IsPublished
	}
	return application.PostFields{
		Title:       r.Title,
		Text:        r.Text,
		PubDate:     r.PubDate,
		CategoryID:  r.CategoryID,
		IsPublished: published,
	}
}

// ListPosts is the index page: visible posts, newest first.
func (h *BlogHandler) ListPosts(c *gin.Context) {
	page, err := h.Blog.ListPosts(c.Request.Context(), c.Query("page"))
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	out := toPostPage(page)
	response.Success(c, http.StatusOK, out.Items, "posts", out.Meta)
}

func (h *BlogHandler) SearchPosts(c *gin.Context) {
	page, err := h.Blog.SearchPosts(c.Request.Context(), c.Query("q"), c.Query("page"))
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	out := toPostPage(page)
	response.Success(c, http.StatusOK, out.Items, "search results", out.Meta)
}

func (h *BlogHandler) PostDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.Blog.PostDetail(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	comments := make([]commentDTO, 0, len(d.Comments))
	for _, cm := range d.Comments {
		comments = append(comments, toComment(cm))
	}
	response.Success(c, http.StatusOK, gin.H{
		"post":     toPost(d.Post, len(d.Comments)),
		"comments": comments,
	}, "post", nil)
}

func (h *BlogHandler) CreatePost(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Blog.CreatePost(c.Request.Context(), actor, req.fields())
	if err != nil {
		writeError(c, h.Logger, err, 0)
		return
	}
	response.Success(c, http.StatusCreated, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "post created", nil)
}

// UpdatePost checks ownership before looking at the payload, so a
// non-author is refused whatever they sent.
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Blog.CheckPostOwner(c.Request.Context(), actor, id); err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Blog.UpdatePost(c.Request.Context(), actor, id, req.fields())
	if err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	response.Success(c, http.StatusOK, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "post updated", nil)
}

func (h *BlogHandler) DeletePost(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.Blog.DeletePost(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	response.Success(c, http.StatusOK, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "post deleted", nil)
}

// UploadImage accepts a multipart "image" file for the actor's post.
func (h *BlogHandler) UploadImage(c *gin.Context) {
	actor, ok := currentUser(c, h.Users, h.Logger)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Blog.CheckPostOwner(c.Request.Context(), actor, id); err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"})
		return
	}
	if fh.Size > maxImageSize {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "must be at most 5MB"})
		return
	}
	ct := fh.Header.Get("Content-Type")
	if ct != "image/jpeg" && ct != "image/png" && ct != "image/gif" && ct != "image/webp" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "must be a jpeg, png, gif or webp image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.Blog.UploadPostImage(c.Request.Context(), actor, id, f, fh.Filename, ct)
	if err != nil {
		writeError(c, h.Logger, err, id)
		return
	}
	response.Success(c, http.StatusOK, response.Redirect{ID: res.ID, Redirect: res.Redirect}, "image uploaded", nil)
}
