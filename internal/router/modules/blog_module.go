package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/internal/container"
	handlers "github.com/oksasatya/blogicum/internal/interface/http"
	"github.com/oksasatya/blogicum/internal/interface/middleware"
	"github.com/oksasatya/blogicum/pkg/helpers"
)

// BlogModule wires post, comment, category and profile routes. All of them
// require a logged-in user.
type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	limit, window := 120, time.Minute
	if cfg := container.GetConfig(); cfg != nil {
		limit, window = cfg.RateLimitMax, cfg.RateLimitWindow
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, limit, window, middleware.KeyByUserID(), nil))
	{
		auth.GET("/posts", m.Handler.ListPosts)
		auth.GET("/posts/search", m.Handler.SearchPosts)
		auth.GET("/posts/:id", m.Handler.PostDetail)
		auth.POST("/posts", m.Handler.CreatePost)
		auth.PUT("/posts/:id", m.Handler.UpdatePost)
		auth.DELETE("/posts/:id", m.Handler.DeletePost)
		auth.POST("/posts/:id/image", m.Handler.UploadImage)

		auth.POST("/posts/:id/comments", m.Handler.CreateComment)
		auth.PUT("/posts/:id/comments/:comment_id", m.Handler.UpdateComment)
		auth.DELETE("/posts/:id/comments/:comment_id", m.Handler.DeleteComment)

		auth.GET("/category/:slug", m.Handler.CategoryPosts)
		auth.GET("/profile/:username", m.Handler.Profile)
	}
}
