package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/internal/container"
	handlers "github.com/oksasatya/blogicum/internal/interface/http"
	"github.com/oksasatya/blogicum/internal/interface/middleware"
	"github.com/oksasatya/blogicum/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /api/auth/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/me, PUT /api/profile
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Public with rate limiting
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
