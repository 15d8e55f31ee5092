package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blogicum/internal/application"
)

// BlogHandler serves posts, comments, categories and profile pages.
type BlogHandler struct {
	Blog   *application.BlogService
	Users  *application.Service
	Logger *logrus.Logger
}

func NewBlogHandler(blogSvc *application.BlogService, users *application.Service, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Blog: blogSvc, Users: users, Logger: logger}
}
