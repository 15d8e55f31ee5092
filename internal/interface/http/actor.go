package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blogicum/internal/application"
	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
)

// currentUser loads the user set by the auth middleware. A session whose
// user no longer exists is treated as unauthenticated.
func currentUser(c *gin.Context, users *application.Service, logger *logrus.Logger) (*entity.User, bool) {
	u, err := users.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			err = blog.ErrUnauthenticated
		}
		writeError(c, logger, err, 0)
		return nil, false
	}
	return u, true
}
