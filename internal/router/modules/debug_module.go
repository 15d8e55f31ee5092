package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/blogicum/internal/container"
	"github.com/oksasatya/blogicum/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics, reachable from private networks only, rate-limited per IP and path
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/debug/vars", middleware.RequireAllow(middleware.AllowPrivateIP()), rl, gin.WrapH(expvar.Handler()))
}
