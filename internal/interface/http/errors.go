package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blogicum/internal/application"
	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/pkg/helpers"
	"github.com/oksasatya/blogicum/pkg/response"
	"github.com/oksasatya/blogicum/pkg/validation"
)

// writeError maps service errors to HTTP responses. postID, when non-zero,
// becomes the redirect target of a Forbidden response.
func writeError(c *gin.Context, logger *logrus.Logger, err error, postID int64) {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, blog.ErrForbidden):
		var meta any
		if postID > 0 {
			meta = gin.H{"redirect": blog.PostDetailPath(postID)}
		}
		response.ErrorWithMeta[any](c, http.StatusForbidden, "forbidden", nil, meta)
	case errors.Is(err, blog.ErrUnauthenticated), errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidCategory):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"category_id": "does not exist"})
	case errors.Is(err, application.ErrEmptyText):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"text": "is required"})
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, "conflict", map[string]string{"username": "is already taken"})
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "conflict", map[string]string{"email": "is already registered"})
	case errors.Is(err, application.ErrSearchUnavailable), errors.Is(err, application.ErrImagesUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(helpers.RequestFields(c)).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// pathID parses a positive integer path parameter. Malformed ids are
// reported as not found, as the router would for an unmatched path.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return 0, false
	}
	return id, true
}
